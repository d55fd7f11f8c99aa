package Controllers

import (
	"io"
	"net/http"
	"os"

	"DocTools/Models"

	"github.com/gin-gonic/gin"
)

// ReceivePush is the inbound webhook the cloud messaging backend delivers
// to. The payload is the provider wire JSON (notification and data
// sub-objects). Delivery is fire-and-forget: the backend gets a 202 as soon
// as the push is handed to the worker, before the display settles.
//
// When the messaging channel was never initialized, pushes are dropped here
// silently; the documented behavior for a mismatched configuration is total
// silence, not an error.
func ReceivePush(c *gin.Context) {
	secret := os.Getenv("PUSH_WEBHOOK_SECRET")
	if secret != "" && c.GetHeader("X-Push-Secret") != secret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if MessagingHandle.Inert() {
		MessagingHandle.LogInertOnce()
		c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
		return
	}

	PushWorker.EnqueuePush(Models.DecodePushMessage(raw))
	c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
}

// NotificationClicked is posted by a window when the user clicks a displayed
// notification. The click carries the notification's data forward.
func NotificationClicked(c *gin.Context) {
	var input Models.ClickEvent
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	PushWorker.EnqueueClick(input)
	c.JSON(http.StatusAccepted, gin.H{"message": "accepted"})
}
