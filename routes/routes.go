package routes

import (
	"github.com/VisaPro-Team/be-visa-platform/domain/auth"
	"github.com/VisaPro-Team/be-visa-platform/domain/blog"
	"github.com/VisaPro-Team/be-visa-platform/domain/content"
	"github.com/VisaPro-Team/be-visa-platform/domain/faq"
	"github.com/VisaPro-Team/be-visa-platform/domain/health"
	"github.com/VisaPro-Team/be-visa-platform/domain/inquiry"
	"github.com/VisaPro-Team/be-visa-platform/domain/media"
	"github.com/VisaPro-Team/be-visa-platform/domain/service"
	"github.com/VisaPro-Team/be-visa-platform/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Auth routes
	e.POST("/auth/login", auth.LoginHandler)
	e.POST("/auth/register", auth.RegisterHandler, middleware.JWTMiddleware, middleware.RoleMiddleware(auth.RoleSuperAdmin))
	e.GET("/auth/me", auth.MeHandler, middleware.JWTMiddleware)

	// Health routes
	e.GET("/health", health.LivenessHandler)
	e.GET("/health/ready", health.ReadinessHandler)
	e.GET("/health/stats", health.StatsHandler, middleware.JWTMiddleware, middleware.RoleMiddleware(auth.RoleSuperAdmin))

	// Inquiry routes. Creation is the public contact form and is rate limited;
	// everything else is admin-only.
	e.POST("/inquiries", inquiry.CreateInquiryHandler, middleware.RateLimiterMiddleware)

	inquiryGroup := e.Group("/inquiries", middleware.JWTMiddleware)
	inquiryGroup.GET("", inquiry.ListInquiriesHandler)
	inquiryGroup.GET("/status/:status", inquiry.ListInquiriesByStatusHandler)
	inquiryGroup.GET("/:id", inquiry.GetInquiryHandler)
	inquiryGroup.PUT("/:id", inquiry.UpdateInquiryStatusHandler)
	inquiryGroup.DELETE("/:id", inquiry.DeleteInquiryHandler)

	// Blog routes. Public reads see published posts only; GetBlogHandler
	// shows drafts to authenticated callers.
	e.GET("/blogs", blog.ListBlogsHandler)
	e.GET("/blogs/tag/:tag", blog.ListBlogsByTagHandler)
	e.GET("/blogs/:id", blog.GetBlogHandler)

	blogGroup := e.Group("/blogs", middleware.JWTMiddleware)
	blogGroup.GET("/admin", blog.ListBlogsAdminHandler)
	blogGroup.POST("", blog.CreateBlogHandler)
	blogGroup.PUT("/:id", blog.UpdateBlogHandler)
	blogGroup.DELETE("/:id", blog.DeleteBlogHandler)

	// Content sections
	e.GET("/content", content.ListContentHandler)
	e.GET("/content/:section", content.GetContentBySectionHandler)

	contentGroup := e.Group("/content", middleware.JWTMiddleware)
	contentGroup.POST("", content.UpsertContentHandler)
	contentGroup.DELETE("/:section", content.DeleteContentHandler)

	// Service routes
	e.GET("/services", service.ListServicesHandler)
	e.GET("/services/featured", service.ListFeaturedServicesHandler)
	e.GET("/services/category/:category", service.ListServicesByCategoryHandler)
	e.GET("/services/:id", service.GetServiceHandler)

	serviceGroup := e.Group("/services", middleware.JWTMiddleware)
	serviceGroup.POST("", service.CreateServiceHandler)
	serviceGroup.PUT("/:id", service.UpdateServiceHandler)
	serviceGroup.DELETE("/:id", service.DeleteServiceHandler)

	// FAQ routes
	e.GET("/faqs", faq.ListFAQsHandler)
	e.GET("/faqs/category/:category", faq.ListFAQsByCategoryHandler)
	e.GET("/faqs/:id", faq.GetFAQHandler)

	faqGroup := e.Group("/faqs", middleware.JWTMiddleware)
	faqGroup.POST("", faq.CreateFAQHandler)
	faqGroup.PUT("/:id", faq.UpdateFAQHandler)
	faqGroup.DELETE("/:id", faq.DeleteFAQHandler)

	// Media routes (admin-only)
	mediaGroup := e.Group("/media", middleware.JWTMiddleware)
	mediaGroup.GET("", media.ListMediaHandler)
	mediaGroup.POST("/upload", media.UploadHandler)
	mediaGroup.POST("/upload/multiple", media.UploadMultipleHandler)
	mediaGroup.DELETE("/:key", media.DeleteMediaHandler)
}
