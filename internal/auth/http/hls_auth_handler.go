// Package http exposes the access-control gateway to the reverse proxy and the login
// flow: the subrequest auth hook, the passcode endpoints and playback URL signing.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/streamgate/internal/auth/domain"
	authUseCase "github.com/allisson/streamgate/internal/auth/usecase"
)

// OriginalURIHeader carries the client's request URI on proxy auth subrequests.
const OriginalURIHeader = "X-Original-URI"

// HLSAuthHandler answers reverse-proxy auth subrequests for media segments and manifests.
type HLSAuthHandler struct {
	gateway authUseCase.AuthorizationGateway
	logger  *slog.Logger
}

// NewHLSAuthHandler creates a new HLS auth handler.
func NewHLSAuthHandler(gateway authUseCase.AuthorizationGateway, logger *slog.Logger) *HLSAuthHandler {
	return &HLSAuthHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// AuthorizeHandler checks the signed URL of the proxied request.
// GET /v1/hls-auth - Returns 204 when the signature is valid and unexpired, 403 otherwise.
// Both responses have an empty body and are never cached.
func (h *HLSAuthHandler) AuthorizeHandler(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	uri := c.GetHeader(OriginalURIHeader)
	if uri == "" {
		uri = c.Request.RequestURI
	}

	request, ok := authDomain.ParseResourceURI(uri)
	if !ok {
		h.logger.Debug("hls auth denied: missing signature", slog.String("uri", uri))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	decision := h.gateway.AuthorizeResource(c.Request.Context(), request.Path, request.Expiry, request.Signature)
	if !decision.Allowed() {
		h.logger.Debug("hls auth denied", slog.String("path", request.Path))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	c.Status(http.StatusNoContent)
	c.Writer.WriteHeaderNow()
}
