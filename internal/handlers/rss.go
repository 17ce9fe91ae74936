package handlers

import (
	"net/http"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RSSHandler struct {
	syndication *services.SyndicationService
	log         *zap.Logger
}

func NewRSSHandler(d *Deps) *RSSHandler {
	return &RSSHandler{syndication: d.Syndication, log: d.Log}
}

// Feed 输出全站最新帖子的 RSS /rss.xml
func (h *RSSHandler) Feed(c *gin.Context) {
	body, err := h.syndication.RSS(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}
