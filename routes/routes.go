package routes

import (
	"medcare/constants"
	adminController "medcare/controllers/admin"
	authController "medcare/controllers/auth"
	billingController "medcare/controllers/billing"
	catalogController "medcare/controllers/catalog"
	deliveryController "medcare/controllers/delivery"
	orderController "medcare/controllers/order"
	prescriptionController "medcare/controllers/prescription"
	"medcare/logger"
	"medcare/middleware"
	billingService "medcare/services/billing"
	orderService "medcare/services/order"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	orders := orderService.NewService(db)
	bills := billingService.NewService(db)

	auth := authController.NewAuthController(db, asyncLogger)
	catalog := catalogController.NewCatalogController(db, asyncLogger)
	order := orderController.NewOrderController(db, orders, asyncLogger)
	delivery := deliveryController.NewDeliveryController(db, orders, asyncLogger)
	billing := billingController.NewBillingController(db, bills, asyncLogger)
	prescription := prescriptionController.NewPrescriptionController(db, asyncLogger)
	admin := adminController.NewAdminController(db, bills)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "medcare", "status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", auth.CustomerRegister)
	api.Post("/login", auth.CustomerLogin)
	api.Post("/reset-password", auth.ResetPassword)
	api.Post("/agent/register", auth.AgentRegister)
	api.Post("/agent/login", auth.AgentLogin)
	api.Post("/admin/login", auth.AdminLogin)
	api.Get("/insurance-plans", admin.ListInsurancePlans)

	// Catalog browsing is open to logged-in customers and staff alike
	catalogGroup := api.Group("/drugs").Use(middleware.RequireAnyPermission())
	catalogGroup.Get("/", catalog.ListDrugs)
	catalogGroup.Get("/:drug_id", catalog.GetDrug)

	/*=============================================================================
	| Customer Routes
	===============================================================================*/
	customerGroup := api.Group("/customer").Use(middleware.RequirePermissions(
		constants.PermCustomerFull,
	))
	customerGroup.Get("/profile", auth.Profile)
	customerGroup.Put("/profile", auth.UpdateProfile)
	customerGroup.Post("/orders", order.Checkout)
	customerGroup.Get("/orders", order.ListMyOrders)
	customerGroup.Get("/orders/:order_number", order.GetMyOrder)
	customerGroup.Delete("/orders/:order_number", order.DeleteMyOrder)
	customerGroup.Get("/bills", billing.MyBills)
	customerGroup.Get("/prescriptions", prescription.MyPrescriptions)

	/*=============================================================================
	| Delivery Agent Routes
	===============================================================================*/
	agentGroup := api.Group("/delivery").Use(middleware.RequirePermissions(
		constants.PermAgentFull,
	))
	agentGroup.Get("/profile", delivery.Profile)
	agentGroup.Put("/profile", delivery.UpdateProfile)
	agentGroup.Put("/status", delivery.UpdateStatus)
	agentGroup.Post("/change-password", delivery.ChangePassword)
	agentGroup.Get("/orders/available", delivery.AvailableOrders)
	agentGroup.Post("/orders/:order_number/accept", delivery.AcceptOrder)
	agentGroup.Post("/orders/:order_number/complete", delivery.CompleteDelivery)
	agentGroup.Get("/orders", delivery.MyDeliveries)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin").Use(middleware.RequirePermissions(
		constants.PermAdminFull,
	))
	adminGroup.Get("/dashboard", admin.Dashboard)
	adminGroup.Get("/customers", admin.ListCustomers)
	adminGroup.Get("/agents/board", admin.AgentBoard)
	adminGroup.Post("/insurance-plans", admin.CreateInsurancePlan)

	adminGroup.Post("/drugs", catalog.AddDrug)
	adminGroup.Put("/drugs/:drug_id/usage", catalog.UpdateUsage)
	adminGroup.Put("/drugs/:drug_id/price", catalog.UpdatePrice)
	adminGroup.Put("/drugs/:drug_id/quantity", catalog.UpdateQuantity)
	adminGroup.Delete("/drugs/:drug_id", catalog.DeleteDrug)
	adminGroup.Get("/drugs/low-stock", catalog.LowStock)
	adminGroup.Get("/drugs/export", catalog.ExportDrugsToExcel)

	adminGroup.Get("/orders", order.ListAllOrders)
	adminGroup.Get("/orders/:order_number", order.GetOrder)
	adminGroup.Put("/orders/:order_number/status", order.UpdateStatus)
	adminGroup.Delete("/orders/:order_number", order.DeleteOrder)

	adminGroup.Post("/bills", billing.CreateBill)
	adminGroup.Get("/bills", billing.ListBills)
	adminGroup.Get("/bills/:phone", billing.BillsByPhone)

	adminGroup.Post("/prescriptions", prescription.Create)
	adminGroup.Get("/prescriptions", prescription.ListAll)
	adminGroup.Get("/prescriptions/:ssn", prescription.BySSN)
	adminGroup.Post("/prescriptions/parse-slip", prescription.ParseSlip)
	adminGroup.Get("/slip-requests/:request_id", admin.GetSlipRequest)
}
