package database

import (
	"fmt"
	"os"

	"medcare/logger"
	"medcare/models/admin"
	"medcare/models/agent"
	"medcare/models/billing"
	"medcare/models/customer"
	"medcare/models/drug"
	"medcare/models/insurance"
	logModel "medcare/models/log"
	"medcare/models/order"
	"medcare/models/prescription"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: foundation models with no cross-table dependencies
	stage1Models := []interface{}{
		&insurance.Insurance{},
		&admin.Admin{},
		&agent.DeliveryAgent{},
		&drug.Drug{},
		&drug.DrugPrice{},
	}
	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: models referencing stage 1
	stage2Models := []interface{}{
		&customer.Customer{},
		&prescription.Prescription{},
		&prescription.PrescriptionDrug{},
		&prescription.SlipParseRequest{},
	}
	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: order flow and billing
	stage3Models := []interface{}{
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusEvent{},
		&billing.Bill{},
		&billing.BillItem{},
	}
	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Remaining models
	remainingModels := []interface{}{
		&logModel.Log{},
	}
	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Customer indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_customers_email ON customers(email)").Error; err != nil {
		return fmt.Errorf("failed to create customer email index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone)").Error; err != nil {
		return fmt.Errorf("failed to create customer phone index: %w", err)
	}

	// Order indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)").Error; err != nil {
		return fmt.Errorf("failed to create order number index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)").Error; err != nil {
		return fmt.Errorf("failed to create order status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create order created_at index: %w", err)
	}

	// Drug indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_drugs_name ON drugs(name)").Error; err != nil {
		return fmt.Errorf("failed to create drug name index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_drugs_quantity ON drugs(quantity)").Error; err != nil {
		return fmt.Errorf("failed to create drug quantity index: %w", err)
	}

	// Prescription indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_prescriptions_ssn ON prescriptions(ssn)").Error; err != nil {
		return fmt.Errorf("failed to create prescription ssn index: %w", err)
	}

	// Bill indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bills_customer_phone ON bills(customer_phone)").Error; err != nil {
		return fmt.Errorf("failed to create bill customer_phone index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_bills_bill_date ON bills(bill_date)").Error; err != nil {
		return fmt.Errorf("failed to create bill bill_date index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)").Error; err != nil {
		return fmt.Errorf("failed to create log method index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_customers_insurance",
			sql: `ALTER TABLE customers ADD CONSTRAINT fk_customers_insurance
				  FOREIGN KEY (insurance_id) REFERENCES insurances(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_orders_customer",
			sql: `ALTER TABLE orders ADD CONSTRAINT fk_orders_customer
				  FOREIGN KEY (customer_id) REFERENCES customers(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_order_items_order",
			sql: `ALTER TABLE order_items ADD CONSTRAINT fk_order_items_order
				  FOREIGN KEY (order_id) REFERENCES orders(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_order_status_events_order",
			sql: `ALTER TABLE order_status_events ADD CONSTRAINT fk_order_status_events_order
				  FOREIGN KEY (order_id) REFERENCES orders(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_bill_items_bill",
			sql: `ALTER TABLE bill_items ADD CONSTRAINT fk_bill_items_bill
				  FOREIGN KEY (bill_id) REFERENCES bills(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
		{
			name: "fk_prescription_drugs_prescription",
			sql: `ALTER TABLE prescription_drugs ADD CONSTRAINT fk_prescription_drugs_prescription
				  FOREIGN KEY (prescription_id) REFERENCES prescriptions(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
