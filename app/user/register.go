package user

import (
	"net/http"
	"time"

	"whispr/feedback-api/db"
	"whispr/feedback-api/internal"
	"whispr/feedback-api/internal/model"
	"whispr/feedback-api/pkg/security"
	"whispr/feedback-api/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const verifyCodeTTL = 10 * time.Minute

type signUpBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new account and mails a verification code. A repeat
// sign-up against an unverified email restarts verification with a fresh
// code and password instead of failing.
//
// The user record is persisted before the mail goes out, so a mail
// failure reports the registration as failed even though the record may
// already exist. Verification can still complete through the reissue path.
func SignUp(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data signUpBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.UsernameValidator(data.Username); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	_, err := d.DB.FindVerifiedByUsername(ctx, data.Username)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Username is already taken",
		})
		return
	}
	if err != db.ErrNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error registering user",
		})

		zap.L().Error("Failed to check username", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error registering user",
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	code, err := security.MakeOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error registering user",
		})

		zap.L().Error("Failed to generate verification code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	expiry := d.Clock().Add(verifyCodeTTL)

	existing, err := d.DB.FindByEmail(ctx, data.Email)
	switch {
	case err == nil && existing.IsVerified:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User already exists with this email",
		})
		return

	case err == nil:
		// Unverified account holds this email: restart verification
		err = d.DB.ReissueVerification(ctx, existing.ID.Hex(), hash, code, expiry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error registering user",
			})

			zap.L().Error("Failed to reissue verification", zap.Error(err), zap.String("requestID", requestID))
			return
		}

	case err == db.ErrNotFound:
		err = d.DB.CreateUser(ctx, &model.User{
			Username:            data.Username,
			Email:               data.Email,
			PasswordHash:        hash,
			VerifyCode:          code,
			VerifyCodeExpiry:    expiry,
			IsVerified:          false,
			IsAcceptingMessages: true,
			Messages:            []model.Message{},
			CreatedAt:           d.Clock(),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Error registering user",
			})

			zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error registering user",
		})

		zap.L().Error("Failed to check email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Mailer.SendVerification(data.Email, data.Username, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send verification email",
		})

		zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully. Please verify your account",
	})
}
