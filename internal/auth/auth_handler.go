package auth

import (
	"fmt"
	"net/http"
	"os"
	"time"

	autherrors "github.com/fenixfl1/CompuPay/internal/auth/errors"
	"github.com/fenixfl1/CompuPay/internal/shared/apperror"
	platform "github.com/fenixfl1/CompuPay/internal/shared/request"
	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func isProd() bool {
	return os.Getenv("APP_ENV") == "production"
}

func setSessionCookies(c *gin.Context, sess Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    sess.AccessToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProd(),
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "refresh_token",
		Value:    sess.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   isProd(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookies(c *gin.Context) {
	for _, name := range []string{"access_token", "refresh_token"} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   isProd(),
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperror.MapValidationError(err))
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	clientType := platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	if platform.IsWebClient(clientType) {
		setSessionCookies(c, sess)
	}

	response.SuccessWithMessage(c, http.StatusOK, sess, fmt.Sprintf("Welcome @%s", sess.User.Username))
}

func (h *Handler) Refresh(c *gin.Context) {
	clientType := platform.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	isWeb := platform.IsWebClient(clientType)

	var refreshToken string
	if isWeb {
		cookie, err := c.Cookie("refresh_token")
		if err != nil {
			response.Fail(c, autherrors.ErrMissingToken)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	sess, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if isWeb {
		setSessionCookies(c, sess)
	}

	response.SuccessWithMessage(c, http.StatusOK, sess, "Token refreshed successfully")
}

func (h *Handler) Me(c *gin.Context) {
	username := c.GetString("username")
	if username == "" {
		response.Fail(c, apperror.ErrUnauthorized)
		return
	}

	res, err := h.service.Me(c.Request.Context(), username)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	clearSessionCookies(c)
	response.SuccessWithMessage(c, http.StatusOK, nil, "Logout successful")
}
