package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Server 包裝 net/http.Server，提供優雅關閉
type Server struct {
	srv *http.Server
	log logrus.FieldLogger
}

// NewServer 建立 HTTP 伺服器
func NewServer(addr string, handler http.Handler, log logrus.FieldLogger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}
}

// Start 阻塞直到伺服器關閉；正常關閉不視為錯誤
func (s *Server) Start() error {
	s.log.WithField("addr", s.srv.Addr).Info("http server listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 等待進行中的請求完成
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
