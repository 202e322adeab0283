package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"qstrategy/engine"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Plugin is the dispatch surface one role exposes to the host.
type Plugin interface {
	Dispatch(account, op, evt, payload string) engine.Result
}

type callRequest struct {
	Account string `json:"account"`
	Func    string `json:"func"`
	Event   string `json:"event"`
	Payload string `json:"payload"`
}

// Server 把各角色的调用面暴露给进程外宿主：每角色一个派发端点，
// 请求体四个字符串字段，响应是布尔（init/destroy）或结果数组。
type Server struct {
	addr    string
	router  *gin.Engine
	plugins map[string]Plugin
}

func New(addr string, plugins map[string]Plugin) *Server {
	if addr == "" {
		addr = ":9900"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	s := &Server{addr: addr, router: router, plugins: plugins}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api/plugin")
	api.POST("/:role/call", s.handleCall)
}

func (s *Server) handleCall(c *gin.Context) {
	role := c.Param("role")
	p, ok := s.plugins[role]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown role %q", role)})
		return
	}
	var req callRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := p.Dispatch(req.Account, req.Func, req.Event, req.Payload)
	if req.Func == engine.OpInit || req.Func == engine.OpDestroy {
		c.JSON(http.StatusOK, gin.H{"result": res.Ack})
		return
	}
	// "no response" means nothing to act on this cycle, not a failure.
	if res.Body == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "application/json", res.Body)
}

// Router is exposed for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}
