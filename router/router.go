package router

import (
	"net/http"
	"time"

	"walletbook/api"
	"walletbook/config"
	_ "walletbook/docs"
	"walletbook/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			// 登录接口限流：每 IP 每分钟最多 10 次
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)

			// 钱包
			walletHandler := api.NewWalletHandler()
			authorized.GET("/wallets", walletHandler.List)
			authorized.POST("/wallets", walletHandler.Create)
			authorized.GET("/wallets/:id", walletHandler.Get)
			authorized.PUT("/wallets/:id", walletHandler.Update)
			authorized.DELETE("/wallets/:id", walletHandler.Delete)

			// 钱包账本
			transactionHandler := api.NewTransactionHandler()
			authorized.GET("/wallets/:id/transactions", transactionHandler.ListByWallet)
			authorized.POST("/wallets/:id/transactions", transactionHandler.CreateInWallet)
			authorized.POST("/transactions", transactionHandler.Create)
			authorized.GET("/transactions/:id", transactionHandler.Get)
			authorized.PUT("/transactions/:id", transactionHandler.Update)
			authorized.DELETE("/transactions/:id", transactionHandler.Delete)

			// 导出
			exportHandler := api.NewExportHandler()
			authorized.GET("/wallets/:id/export/excel", exportHandler.ExportExcel)

			// 类别（删除即归档）
			categoryHandler := api.NewCategoryHandler()
			authorized.GET("/categories", categoryHandler.List)
			authorized.POST("/categories", categoryHandler.Create)
			authorized.PUT("/categories/:id", categoryHandler.Update)
			authorized.DELETE("/categories/:id", categoryHandler.Archive)

			// 标签（硬删除）
			tagHandler := api.NewTagHandler()
			authorized.GET("/tags", tagHandler.List)
			authorized.POST("/tags", tagHandler.Create)
			authorized.PUT("/tags/:id", tagHandler.Update)
			authorized.DELETE("/tags/:id", tagHandler.Delete)
		}
	}

	return r
}

// CORSMiddleware 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
