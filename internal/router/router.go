package router

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"techmarket/internal/ai"
	"techmarket/internal/config"
	"techmarket/internal/middleware"
	"techmarket/internal/model"
	"techmarket/internal/payment"

	"github.com/gin-gonic/gin"
	rd "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/genai"
	"gorm.io/gorm"
)

// Notifier sends the two post-checkout emails. A nil Notifier means mail is
// unconfigured and both sends are skipped silently.
type Notifier interface {
	SendOrderConfirmation(d model.OrderDetails, orderID string) error
	SendAdminAlert(d model.OrderDetails, paymentID string) error
}

// AIService is the seam over the hosted AI proxy calls.
type AIService interface {
	Chat(ctx context.Context, message string, history []ai.ChatTurn) (string, error)
	QuickSummary(ctx context.Context, title, description string) (string, error)
	MapsSearch(ctx context.Context, query string, loc *ai.Location) (string, []*genai.GroundingChunk, error)
	GenerateImage(ctx context.Context, prompt, size string) ([]byte, error)
	GenerateVideo(ctx context.Context, imageBase64, prompt, aspectRatio string) ([]byte, error)
}

// Setup registers all HTTP routes. rdb may be nil, which disables the AI
// rate limiter; mail may be nil, which disables order emails.
func Setup(r *gin.Engine, db *gorm.DB, gw payment.OrderCreator, mail Notifier, aiSvc AIService, rdb *rd.Client, cfg config.AppConfig, log *zap.Logger) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})

	// Catalog
	r.GET("/api/products", listProducts(db, log))
	r.POST("/api/products", createProduct(db, log))

	// Checkout
	r.POST("/api/create-order", createOrder(gw, log))
	r.POST("/api/verify-payment", verifyPayment(db, mail, log))

	// AI proxies
	aiGroup := r.Group("/api/ai")
	if rdb != nil {
		aiGroup.Use(middleware.AIRateLimit(rdb, cfg.AIRateLimit, cfg.AIRateWindow))
	}
	aiGroup.POST("/chat", aiChat(aiSvc, log))
	aiGroup.POST("/quick-summary", aiQuickSummary(aiSvc, log))
	aiGroup.POST("/maps-search", aiMapsSearch(aiSvc, log))
	aiGroup.POST("/generate-image", aiGenerateImage(aiSvc, log))
	aiGroup.POST("/generate-video", aiGenerateVideo(aiSvc, log))
}

// listProducts returns every listing, newest first. The id tiebreaker keeps
// the order stable when several listings share a creation timestamp (the
// seed inserts all five in the same instant).
func listProducts(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var list []model.Listing
		if err := db.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
			log.Error("list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// createProduct inserts a seller-submitted listing. Fields are taken as
// sent; the catalog accepts whatever the form posts.
func createProduct(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title       string  `json:"title"`
			Description string  `json:"description"`
			Price       float64 `json:"price"`
			Category    string  `json:"category"`
			Image       string  `json:"image"`
			SellerName  string  `json:"seller_name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		p := &model.Listing{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			Image:       req.Image,
			SellerName:  req.SellerName,
		}
		if err := db.Create(p).Error; err != nil {
			log.Error("create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "success": true})
	}
}

// createOrder hands the requested amount to the payment gateway and returns
// the order handle verbatim. The amount is passed through as the client sent
// it; the gateway is the authority on what it will accept.
func createOrder(gw payment.OrderCreator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Amount float64 `json:"amount"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		body, err := gw.CreateOrder(req.Amount)
		if err != nil {
			log.Error("create order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

// verifyPayment records a client-reported payment completion and fires the
// two notification emails. The order row is committed before mail is
// attempted and is never rolled back: a mail failure reports 500 with the
// order already persisted.
func verifyPayment(db *gorm.DB, mail Notifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RazorpayOrderID   string             `json:"razorpay_order_id"`
			RazorpayPaymentID string             `json:"razorpay_payment_id"`
			RazorpaySignature string             `json:"razorpay_signature"`
			IsMock            bool               `json:"isMock"`
			OrderDetails      model.OrderDetails `json:"orderDetails"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// TODO: verify req.RazorpaySignature with HMAC-SHA256 over
		// order_id|payment_id before trusting the callback
		// (razorpay-go/utils.VerifyPaymentSignature). Until then any
		// well-formed completion report is accepted and recorded as paid.

		order := &model.Order{
			OrderID:         req.RazorpayOrderID,
			PaymentID:       req.RazorpayPaymentID,
			Amount:          req.OrderDetails.Amount,
			Currency:        "INR",
			Status:          model.StatusPaid,
			CustomerName:    req.OrderDetails.CustomerName,
			CustomerEmail:   req.OrderDetails.CustomerEmail,
			CustomerAddress: req.OrderDetails.Address,
			GPSCoordinates:  model.MarshalGPS(req.OrderDetails.GPS),
			Items:           model.MarshalItems(req.OrderDetails.Items),
		}
		if err := db.Create(order).Error; err != nil {
			log.Error("save order", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}

		// Notification is not part of the transaction: the order above
		// stays committed no matter what happens below.
		if mail != nil {
			if err := mail.SendOrderConfirmation(req.OrderDetails, req.RazorpayOrderID); err != nil {
				log.Error("customer confirmation email", zap.String("order_id", req.RazorpayOrderID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
				return
			}
			if err := mail.SendAdminAlert(req.OrderDetails, req.RazorpayPaymentID); err != nil {
				log.Error("admin alert email", zap.String("payment_id", req.RazorpayPaymentID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func aiChat(aiSvc AIService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Message string        `json:"message"`
			History []ai.ChatTurn `json:"history"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		text, err := aiSvc.Chat(c.Request.Context(), req.Message, req.History)
		if err != nil {
			log.Error("ai chat", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate response"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"response": text})
	}
}

func aiQuickSummary(aiSvc AIService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductTitle       string `json:"productTitle"`
			ProductDescription string `json:"productDescription"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		summary, err := aiSvc.QuickSummary(c.Request.Context(), req.ProductTitle, req.ProductDescription)
		if err != nil {
			log.Error("ai quick summary", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary})
	}
}

func aiMapsSearch(aiSvc AIService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Query    string       `json:"query"`
			Location *ai.Location `json:"location"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		text, chunks, err := aiSvc.MapsSearch(c.Request.Context(), req.Query, req.Location)
		if err != nil {
			log.Error("ai maps search", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search maps"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"text": text, "groundingChunks": chunks})
	}
}

func aiGenerateImage(aiSvc AIService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Prompt string `json:"prompt"`
			Size   string `json:"size"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		img, err := aiSvc.GenerateImage(c.Request.Context(), req.Prompt, req.Size)
		if err != nil {
			if errors.Is(err, ai.ErrNoImage) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "No image generated"})
				return
			}
			log.Error("ai generate image", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate image"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"imageUrl": "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
		})
	}
}

func aiGenerateVideo(aiSvc AIService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ImageBase64 string `json:"imageBase64"`
			Prompt      string `json:"prompt"`
			AspectRatio string `json:"aspectRatio"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		video, err := aiSvc.GenerateVideo(c.Request.Context(), req.ImageBase64, req.Prompt, req.AspectRatio)
		if err != nil {
			if errors.Is(err, ai.ErrVideoIncomplete) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Video generation timed out or failed"})
				return
			}
			log.Error("ai generate video", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate video"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"videoBase64": "data:video/mp4;base64," + base64.StdEncoding.EncodeToString(video),
		})
	}
}
