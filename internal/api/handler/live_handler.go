package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	ws "github.com/gorilla/websocket"

	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/response"
)

// Subscriber 实时推送订阅（由 live.Hub 实现）
type Subscriber interface {
	Serve(ctx context.Context, conn *ws.Conn)
}

// LiveHandler 考勤实时推送 websocket 入口
type LiveHandler struct {
	hub      Subscriber
	upgrader ws.Upgrader
}

// NewLiveHandler 创建 LiveHandler
// 允许同源以及 allowOrigins 中的来源
func NewLiveHandler(hub Subscriber, allowOrigins []string) *LiveHandler {
	origins := make(map[string]bool, len(allowOrigins))
	for _, o := range allowOrigins {
		origins[strings.TrimRight(o, "/")] = true
	}

	return &LiveHandler{
		hub: hub,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origins[origin] {
					return true
				}
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// Attendance 订阅考勤变更
// GET /ws/attendance/
func (h *LiveHandler) Attendance(c *gin.Context) {
	if h.hub == nil {
		response.NotFound(c, "Live updates are not enabled")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已写入错误响应
		return
	}
	h.hub.Serve(c.Request.Context(), conn)
}
