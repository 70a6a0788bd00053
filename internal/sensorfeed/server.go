package sensorfeed

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/seekerror/logw"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server serves a fixed sequence of frames to whichever client connects,
// one frame per text message, in order. It is a stand-in for a real
// sensor board's transport -- see boardsim, which drives it from a replay
// fixture. Each connecting client gets its own replay of the whole
// sequence from the start; the number of concurrent clients is not
// limited.
type Server struct {
	frames []Frame
}

// NewServer returns a Server that will replay frames, in order, to each
// connecting client.
func NewServer(frames []Frame) *Server {
	return &Server{frames: frames}
}

// Handler returns the http.Handler to mount at the feed endpoint.
func (s *Server) Handler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logw.Errorf(ctx, "Upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		logw.Infof(ctx, "Sensor feed client connected: %v", r.RemoteAddr)
		for _, f := range s.frames {
			if err := conn.WriteJSON(f); err != nil {
				logw.Infof(ctx, "Sensor feed client disconnected: %v", err)
				return
			}
		}
	})
}
