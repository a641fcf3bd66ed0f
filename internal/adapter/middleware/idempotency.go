package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	id32 "verification-platform/pkg/id"
)

const (
	// upper bound for one upload to finish before another attempt may take over
	provisionalLockTTL = 60 * time.Second
	// accepted distance between Ax-Request-At and the server clock
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

// ReplayHeader marks a response served from the idempotency store.
const ReplayHeader = "Ax-Idempotent-Replay"

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// respRecorder tees the handler's response so it can be stored.
type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

type requestMeta struct {
	sessionID string
	requestID string
	at        time.Time
}

// readMeta validates Ax-Request-Id, Ax-Request-At and the :session_id
// param; problem is the rejection message, empty when all are valid.
func readMeta(c echo.Context) (m requestMeta, problem string) {
	h := c.Request().Header
	m.sessionID = c.Param("session_id")
	m.requestID = strings.TrimSpace(h.Get("Ax-Request-Id"))
	if m.requestID == "" {
		return m, "missing Ax-Request-Id"
	}
	if !validReqID(m.requestID) {
		return m, "invalid Ax-Request-Id format"
	}
	at, err := parseAxRequestAt(h.Get("Ax-Request-At"))
	if err != nil {
		return m, err.Error()
	}
	now := nowUTC()
	if at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return m, "Ax-Request-At too skewed"
	}
	m.at = at
	if !id32.IsID32(m.sessionID) {
		return m, "invalid session_id path param"
	}
	return m, ""
}

// IdempotencyMiddleware makes a session-scoped mutation safe to retry. The
// key is method + route + session id + Ax-Request-Id; a completed response
// is replayed for the same payload and a different payload is rejected.
// Ax-Request-At must be epoch (s or ms) or RFC3339 with a zone. 5xx
// responses are not stored, so the client can retry them.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			meta, problem := readMeta(c)
			if problem != "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": problem})
			}

			var (
				body []byte
				err  error
			)
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					return c.JSON(http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			fingerprint := requestFingerprint(req.Header.Get(echo.HeaderContentType), body)

			key := buildKey(req.Method, c.Path(), meta.sessionID, meta.requestID)
			l := log.WithField("idempotency_key", key)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			ok, err := provisionalSet(ctx, rdb, key, idempEntry{
				InProgress:  true,
				BodySHA256:  fingerprint,
				RequestID:   meta.requestID,
				RequestAtMS: meta.at.UnixMilli(),
				CreatedAt:   nowUTC(),
			})
			if err != nil {
				l.WithError(err).Error("idempotency store unavailable")
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !ok {
				cur, err := loadEntry(ctx, rdb, key)
				if err != nil {
					l.WithError(err).Warn("failed to load idempotency entry")
				}
				switch {
				case cur.BodySHA256 != "" && cur.BodySHA256 != fingerprint:
					return c.JSON(http.StatusConflict, map[string]string{"error": "Ax-Request-Id reused with different body"})
				case !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0:
					c.Response().Header().Set(ReplayHeader, "true")
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return c.JSON(http.StatusConflict, map[string]string{"error": "request is already in progress"})
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.code >= http.StatusInternalServerError {
				if err := release(context.Background(), rdb, key); err != nil {
					l.WithError(err).Warn("failed to release idempotency lock")
				}
				return nil
			}
			err = saveFinal(context.Background(), rdb, key, idempEntry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  fingerprint,
				RequestID:   meta.requestID,
				RequestAtMS: meta.at.UnixMilli(),
				CreatedAt:   nowUTC(),
			}, ttl)
			if err != nil {
				l.WithError(err).Warn("failed to store idempotent response")
			}
			return nil
		}
	}
}
