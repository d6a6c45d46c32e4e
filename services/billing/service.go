package billing

import (
	"errors"
	"fmt"
	"time"

	billingModel "medcare/models/billing"
	drugModel "medcare/models/drug"
	billingTypes "medcare/types/billing"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var ErrDrugNotFound = errors.New("drug not found in inventory")

// Service creates invoices and computes billing aggregates.
type Service struct {
	DB *gorm.DB
}

// NewService creates a new billing service
func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CreateBill builds an ad-hoc invoice from named drug lines, priced from the
// current price table. A drug with no price row bills at zero. Header and
// detail rows are written together.
func (s *Service) CreateBill(req billingTypes.CreateBillRequest) (*billingModel.Bill, error) {
	bill := billingModel.Bill{
		CustomerPhone: req.CustomerPhone,
		BillDate:      time.Now(),
	}

	for _, line := range req.Items {
		var d drugModel.Drug
		if err := s.DB.Where("name = ?", line.DrugName).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrDrugNotFound, line.DrugName)
			}
			return nil, err
		}

		price, err := s.currentPrice(d.DrugID)
		if err != nil {
			return nil, err
		}

		subtotal := ComputeSubtotal(line.Quantity, price)
		bill.Items = append(bill.Items, billingModel.BillItem{
			DrugID:    d.DrugID,
			DrugName:  d.Name,
			Quantity:  line.Quantity,
			UnitPrice: price,
			Subtotal:  subtotal,
		})
		bill.TotalAmount += subtotal
	}

	if err := s.DB.Create(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (s *Service) currentPrice(drugID uint) (float64, error) {
	var price drugModel.DrugPrice
	err := s.DB.Where("drug_id = ?", drugID).First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return price.PricePerUnit, nil
}

// ComputeSubtotal is the single place a bill line amount is derived.
func ComputeSubtotal(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice
}

// List returns bills newest first. An empty phone means every customer;
// a non-nil day limits results to that calendar day.
func (s *Service) List(phone string, day *time.Time) ([]billingModel.Bill, error) {
	query := s.DB.Preload("Items").Order("bill_date DESC")
	if phone != "" {
		query = query.Where("customer_phone = ?", phone)
	}
	if day != nil {
		start := now.New(*day).BeginningOfDay()
		end := now.New(*day).EndOfDay()
		query = query.Where("bill_date BETWEEN ? AND ?", start, end)
	}

	var bills []billingModel.Bill
	if err := query.Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// RevenueForDay sums bill totals inside one calendar day.
func (s *Service) RevenueForDay(day time.Time) (float64, error) {
	start := now.New(day).BeginningOfDay()
	end := now.New(day).EndOfDay()

	var total float64
	err := s.DB.Model(&billingModel.Bill{}).
		Where("bill_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

// RevenueForMonth sums bill totals inside the calendar month containing day.
func (s *Service) RevenueForMonth(day time.Time) (float64, error) {
	start := now.New(day).BeginningOfMonth()
	end := now.New(day).EndOfMonth()

	var total float64
	err := s.DB.Model(&billingModel.Bill{}).
		Where("bill_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}
