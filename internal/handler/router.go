package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/asset-tracking-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	requestHandler *RequestHandler
	deptHandler    *DepartmentHandler
}

// NewRouter создаёт новый роутер
func NewRouter(requestHandler *RequestHandler, deptHandler *DepartmentHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		logger:         logger,
		requestHandler: requestHandler,
		deptHandler:    deptHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики
	r.mux.HandleFunc("/requests/", r.requestsRouter)
	r.mux.HandleFunc("/departments/", r.departmentsRouter)
	r.mux.HandleFunc("/requestLogs", r.requestLogsRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// requestsRouter обрабатывает все запросы к /requests/
func (r *Router) requestsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/requests")
	path = strings.Trim(path, "/")

	// POST /requests/ - подача новой заявки
	if path == "" && req.Method == http.MethodPost {
		r.requestHandler.Submit(w, req)
		return
	}

	parts := strings.Split(path, "/")

	// PUT /requests/accepted/{id} и /requests/rejected/{id}
	if len(parts) == 2 && req.Method == http.MethodPut {
		switch parts[0] {
		case "accepted":
			r.requestHandler.Accept(w, req, parts[1])
			return
		case "rejected":
			r.requestHandler.Reject(w, req, parts[1])
			return
		}
	}

	// GET /requests/{userId} - список, видимый пользователю
	if len(parts) == 1 && parts[0] != "" && req.Method == http.MethodGet {
		r.requestHandler.ListForUser(w, req, parts[0])
		return
	}

	if path == "" || len(parts) <= 2 {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// departmentsRouter обрабатывает все запросы к /departments/
func (r *Router) departmentsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/departments")
	path = strings.Trim(path, "/")

	// POST /departments/ - создание подразделения
	if path == "" && req.Method == http.MethodPost {
		r.deptHandler.Create(w, req)
		return
	}

	parts := strings.Split(path, "/")

	if len(parts) == 1 && parts[0] != "" {
		// /departments/{departmentId}
		switch req.Method {
		case http.MethodGet:
			r.deptHandler.GetByID(w, req, parts[0])
		case http.MethodPatch:
			r.deptHandler.Update(w, req, parts[0])
		case http.MethodDelete:
			r.deptHandler.Delete(w, req, parts[0])
		default:
			http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		}
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// requestLogsRouter обрабатывает чтение журнала аудита
func (r *Router) requestLogsRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	r.requestHandler.ListLogs(w, req)
}
