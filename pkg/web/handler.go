package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"tableflip.dev/mytodo/pkg/app"
	"tableflip.dev/mytodo/pkg/printers"
	"tableflip.dev/mytodo/pkg/prompt"
	"tableflip.dev/mytodo/pkg/task"
	"tableflip.dev/mytodo/pkg/view"
)

// Options configures the web handler.
type Options struct {
	Service *app.Service
	Log     logrus.FieldLogger
	// Assets serves the static files. Defaults to the embedded files.
	Assets http.Handler
	// Sort is the initial sort mode.
	Sort view.SortMode
}

// Handler serves the task list as HTML pages, a JSON api and a change feed.
type Handler struct {
	svc       *app.Service
	log       logrus.FieldLogger
	mux       *http.ServeMux
	templates *templateWrapper
	hub       *hub
	cancel    func()

	mu     sync.Mutex
	mode   view.SortMode
	notice string
}

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		svc:       opts.Service,
		log:       opts.Log,
		templates: newTemplateWrapper(),
		hub:       newHub(),
		mode:      opts.Sort,
	}
	if h.log == nil {
		h.log = logrus.StandardLogger()
	}
	assets := opts.Assets
	if assets == nil {
		assets = Assets()
	}
	h.cancel = h.svc.Subscribe(func(c app.Change) {
		h.hub.broadcast()
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleActive)
	mux.HandleFunc("GET /archive", h.handleArchive)
	mux.HandleFunc("GET /tasks/{id}", h.handleDetail)
	mux.HandleFunc("POST /tasks", h.handleCreate)
	mux.HandleFunc("POST /tasks/{id}", h.handleUpdate)
	mux.HandleFunc("POST /tasks/{id}/complete", h.handleToggle(app.OpToggleCompletion))
	mux.HandleFunc("POST /tasks/{id}/mark", h.handleToggle(app.OpToggleMark))
	mux.HandleFunc("POST /tasks/{id}/archive", h.handleToggle(app.OpArchive))
	mux.HandleFunc("POST /tasks/{id}/delete", h.handleToggle(app.OpDelete))
	mux.HandleFunc("POST /tasks/{id}/restore", h.handleRestore)
	mux.HandleFunc("POST /tasks/{id}/move", h.handleMove)
	mux.HandleFunc("POST /sort", h.handleSort)
	mux.HandleFunc("POST /marked/delete", h.handleDeleteMarked)
	mux.HandleFunc("POST /archive/clear", h.handleClearArchive)
	mux.HandleFunc("GET /api/tasks", h.handleAPITasks)
	mux.HandleFunc("GET /ws", h.handleWS)
	for _, path := range AssetPaths {
		mux.Handle("GET "+path, assets)
	}
	h.mux = mux
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Close stops change notifications and disconnects websocket clients.
func (h *Handler) Close() {
	if h.cancel != nil {
		h.cancel()
	}
	h.hub.close()
}

type pageData struct {
	Tab       string
	Sort      string
	Reorder   bool
	Active    []row
	Archived  []row
	Selected  *detail
	Notice    string
	Error     string
	Form      formValues
	Completed int
	Marked    int
}

type formValues struct {
	Title string
	Memo  string
}

type row struct {
	ID        string
	Title     string
	Memo      string
	Check     string
	Mark      string
	Completed bool
	Marked    bool
	Dates     string
}

type detail struct {
	row
	Created     string
	CompletedAt string
	IsArchived  bool
	FullMemo    string
}

func toRow(t *task.Task) row {
	return row{
		ID:        t.ID,
		Title:     t.Title,
		Memo:      firstLine(t.Memo),
		Check:     checkGlyph(t),
		Mark:      markGlyph(t),
		Completed: t.IsCompleted,
		Marked:    t.IsDeleted,
		Dates:     printers.DateRange(t),
	}
}

func toDetail(t *task.Task) *detail {
	d := &detail{row: toRow(t), Created: t.CreatedAt.String(), IsArchived: t.IsArchived, FullMemo: t.Memo}
	if t.CompletedAt != nil {
		d.CompletedAt = t.CompletedAt.String()
	}
	return d
}

func (h *Handler) sortMode(r *http.Request) view.SortMode {
	h.mu.Lock()
	mode := h.mode
	h.mu.Unlock()
	if q := r.URL.Query().Get("sort"); q != "" {
		if m, err := view.ParseSortMode(q); err == nil {
			mode = m
		}
	}
	return mode
}

func (h *Handler) takeNotice() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := h.notice
	h.notice = ""
	return n
}

func (h *Handler) setNotice(alerts []string) {
	if len(alerts) == 0 {
		return
	}
	h.mu.Lock()
	h.notice = strings.Join(alerts, " ")
	h.mu.Unlock()
}

func (h *Handler) page(r *http.Request, tab string) pageData {
	mode := h.sortMode(r)
	p := h.svc.Project(mode)
	data := pageData{
		Tab:     tab,
		Sort:    mode.String(),
		Reorder: mode.Reorderable(),
		Notice:  h.takeNotice(),
	}
	for _, t := range p.Active {
		data.Active = append(data.Active, toRow(t))
	}
	for _, t := range p.Archived {
		data.Archived = append(data.Archived, toRow(t))
	}
	_, data.Completed, data.Marked, _ = p.Counts()
	return data
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	h.templates.Render(w, http.StatusOK, h.page(r, "active"))
}

func (h *Handler) handleArchive(w http.ResponseWriter, r *http.Request) {
	h.templates.Render(w, http.StatusOK, h.page(r, "archive"))
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	t, ok := h.svc.Get(r.PathValue("id"))
	if !ok {
		redirect(w, r, "/")
		return
	}
	tab := "active"
	if t.IsArchived {
		tab = "archive"
	}
	data := h.page(r, tab)
	data.Selected = toDetail(t)
	data.Form = formValues{Title: t.Title, Memo: t.Memo}
	h.templates.Render(w, http.StatusOK, data)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	form := formValues{Title: r.FormValue("title"), Memo: r.FormValue("memo")}
	_, err := h.svc.Create(r.Context(), form.Title, form.Memo)
	if err != nil && !isPersistence(err) {
		data := h.page(r, "active")
		data.Form = form
		data.Error = errorMessage(err)
		h.templates.Render(w, http.StatusUnprocessableEntity, data)
		return
	}
	h.warnPersistence(err)
	redirect(w, r, "/")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// Only posted fields change.
	var f task.Fields
	if _, ok := r.PostForm["title"]; ok {
		title := r.PostForm.Get("title")
		f.Title = &title
	}
	if _, ok := r.PostForm["memo"]; ok {
		memo := r.PostForm.Get("memo")
		f.Memo = &memo
	}
	_, err := h.svc.Update(r.Context(), id, f)
	switch {
	case errors.Is(err, task.ErrNotFound):
		redirect(w, r, "/")
		return
	case err != nil && !isPersistence(err):
		t, ok := h.svc.Get(id)
		if !ok {
			redirect(w, r, "/")
			return
		}
		data := h.page(r, "active")
		data.Selected = toDetail(t)
		data.Form = formValues{Title: t.Title, Memo: t.Memo}
		if f.Title != nil {
			data.Form.Title = *f.Title
		}
		if f.Memo != nil {
			data.Form.Memo = *f.Memo
		}
		data.Error = errorMessage(err)
		h.templates.Render(w, http.StatusUnprocessableEntity, data)
		return
	}
	h.warnPersistence(err)
	redirect(w, r, "/tasks/"+id)
}

func (h *Handler) handleToggle(op app.Op) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		var err error
		switch op {
		case app.OpToggleCompletion:
			err = h.svc.ToggleCompletion(r.Context(), id)
		case app.OpToggleMark:
			err = h.svc.ToggleDeletionMark(r.Context(), id)
		case app.OpArchive:
			err = h.svc.Archive(r.Context(), id)
		case app.OpDelete:
			err = h.svc.Delete(r.Context(), id)
		}
		h.warnPersistence(err)
		redirect(w, r, back(r, "/"))
	}
}

func (h *Handler) confirmer(r *http.Request) *prompt.Script {
	return &prompt.Script{Answers: []bool{r.FormValue("confirm") == "yes"}}
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	p := h.confirmer(r)
	_, err := h.svc.RestoreWithConfirm(r.Context(), r.PathValue("id"), p)
	h.warnPersistence(err)
	h.setNotice(p.Alerts)
	redirect(w, r, "/archive")
}

func (h *Handler) handleMove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	mode := h.sortMode(r)
	var err error
	if target := r.FormValue("target"); target != "" {
		_, err = h.svc.ReorderOnto(r.Context(), id, target, mode)
	} else if order, perr := strconv.Atoi(r.FormValue("order")); perr == nil {
		_, err = h.svc.Reorder(r.Context(), id, order, mode)
	}
	h.warnPersistence(err)
	if wantsJSON(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	redirect(w, r, "/")
}

func (h *Handler) handleSort(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if m, err := view.ParseSortMode(r.FormValue("sort")); err == nil && r.FormValue("sort") != "" {
		h.mode = m
	} else {
		h.mode = h.mode.Next()
	}
	h.mu.Unlock()
	redirect(w, r, "/")
}

func (h *Handler) handleDeleteMarked(w http.ResponseWriter, r *http.Request) {
	p := h.confirmer(r)
	_, err := h.svc.DeleteMarked(r.Context(), p)
	h.warnPersistence(err)
	h.setNotice(p.Alerts)
	redirect(w, r, "/")
}

func (h *Handler) handleClearArchive(w http.ResponseWriter, r *http.Request) {
	p := h.confirmer(r)
	_, err := h.svc.ClearArchive(r.Context(), p)
	h.warnPersistence(err)
	h.setNotice(p.Alerts)
	redirect(w, r, "/archive")
}

type apiResponse struct {
	View  string       `json:"view"`
	Sort  string       `json:"sort"`
	Tasks []*task.Task `json:"tasks"`
}

func (h *Handler) handleAPITasks(w http.ResponseWriter, r *http.Request) {
	mode := h.sortMode(r)
	which := r.URL.Query().Get("view")
	var tasks []*task.Task
	switch which {
	case "", "active":
		which = "active"
		tasks = h.svc.Active(mode)
	case "archive":
		tasks = h.svc.Archived()
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "view must be active or archive"})
		return
	}
	if tasks == nil {
		tasks = []*task.Task{}
	}
	writeJSON(w, http.StatusOK, apiResponse{View: which, Sort: mode.String(), Tasks: tasks})
}

func (h *Handler) warnPersistence(err error) {
	if err == nil {
		return
	}
	h.log.WithError(err).Warn("change kept in memory but not saved")
	h.mu.Lock()
	h.notice = "Could not save changes: " + err.Error()
	h.mu.Unlock()
}

func isPersistence(err error) bool {
	var pe *task.PersistenceError
	return errors.As(err, &pe)
}

func errorMessage(err error) string {
	var ve *task.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason.Error()
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func back(r *http.Request, fallback string) string {
	if next := r.FormValue("next"); strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}

func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
