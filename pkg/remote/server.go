package remote

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/PaysanCorrezien/ui-interaction/internal/logger"
	"github.com/PaysanCorrezien/ui-interaction/pkg/config"
	"github.com/PaysanCorrezien/ui-interaction/pkg/uia"
)

const (
	authTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	maxFrameSize = 1 << 20
)

// Server WebSocket 远程自动化服务。
// 所有连接共享同一个自动化会话, 请求跨连接串行执行;
// 元素引用表按连接隔离
type Server struct {
	session uia.Automation
	mgr     AppManager
	cfg     *config.Config
	version string

	upgrader websocket.Upgrader

	dispatchMu sync.Mutex

	mu       sync.Mutex
	listener net.Listener
	httpSrv  *http.Server
}

// NewServer 创建远程服务
func NewServer(session uia.Automation, mgr AppManager, cfg *config.Config, version string) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		session: session,
		mgr:     mgr,
		cfg:     cfg,
		version: version,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: authTimeout,
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
		},
	}
}

// Start 绑定监听地址并在后台开始服务
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)

	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("监听 %s 失败: %w", s.cfg.ListenAddr, err)
	}

	srv := &http.Server{Handler: mux}

	s.mu.Lock()
	s.listener = ln
	s.httpSrv = srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("远程服务异常退出: %v", err)
		}
	}()

	logger.Info("远程服务已启动: ws://%s/ws", ln.Addr())
	return nil
}

// Addr 返回实际监听地址, 未启动时为空串
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown 停止服务
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpSrv
	s.httpSrv = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	logger.Info("远程服务正在停止")
	return srv.Shutdown(ctx)
}

// Run 启动服务并阻塞到 ctx 取消
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket 升级失败: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxFrameSize)
	remote := conn.RemoteAddr().String()
	connID := uuid.NewString()
	logger.Info("客户端已连接: %s (会话 %s)", remote, connID)

	hello := Hello{
		Type:      "hello",
		SessionID: connID,
		Version:   s.version,
		Platform:  runtime.GOOS,
	}
	if err := s.writeJSON(conn, hello); err != nil {
		logger.Warn("发送 hello 帧失败: %v", err)
		return
	}

	if !s.authenticate(conn, remote) {
		return
	}

	dispatcher := NewDispatcher(s.session, s.mgr, s.cfg)
	defer dispatcher.Release()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("读取请求失败: %v", err)
			}
			logger.Info("客户端已断开: %s", remote)
			return
		}

		s.dispatchMu.Lock()
		resp := dispatcher.Handle(&req)
		s.dispatchMu.Unlock()

		if err := s.writeJSON(conn, resp); err != nil {
			logger.Warn("发送响应失败: %v", err)
			return
		}
	}
}

// authenticate 校验连接令牌。未配置令牌时直接放行;
// 配置时首帧必须是 auth 请求
func (s *Server) authenticate(conn *websocket.Conn, remote string) bool {
	if s.cfg.Token == "" {
		return true
	}

	conn.SetReadDeadline(time.Now().Add(authTimeout))
	defer conn.SetReadDeadline(time.Time{})

	var req Request
	if err := conn.ReadJSON(&req); err != nil {
		logger.Warn("读取认证帧失败: %s: %v", remote, err)
		return false
	}
	if req.Action != ActionAuth {
		s.writeJSON(conn, invalidResponse(req.ID, "首帧必须是 auth 请求"))
		logger.Warn("客户端未认证: %s", remote)
		return false
	}

	token, _ := req.Payload["token"].(string)
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.Token)) != 1 {
		s.writeJSON(conn, invalidResponse(req.ID, "令牌错误"))
		logger.Warn("令牌校验失败: %s", remote)
		return false
	}

	if err := s.writeJSON(conn, okResponse(req.ID, map[string]bool{"authenticated": true})); err != nil {
		return false
	}
	logger.Debug("客户端认证通过: %s", remote)
	return true
}

func (s *Server) writeJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}
