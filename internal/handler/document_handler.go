package handler

import (
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"docs-portal/internal/model/requestresponse"
	"docs-portal/internal/ports"
	"docs-portal/internal/security"
	"docs-portal/internal/service"
	"docs-portal/internal/util"
	"errors"
	"github.com/go-chi/chi/v5"
	"net/http"
	"strconv"
	"time"
)

// multipartMemory : часть формы, которая держится в памяти, остальное пишется во временный файл
const multipartMemory = 8 << 20

type DocumentHandler struct {
	documents     ports.DocumentService
	uploads       ports.UploadService
	store         *security.CookieStore
	pages         security.Pages
	inflight      *util.InFlight
	maxUpload     int64
	uploadTimeout time.Duration
}

func NewDocumentHandler(
	documents ports.DocumentService,
	uploads ports.UploadService,
	store *security.CookieStore,
	pages security.Pages,
	inflight *util.InFlight,
	maxUpload int64,
	uploadTimeout time.Duration,
) *DocumentHandler {
	return &DocumentHandler{
		documents:     documents,
		uploads:       uploads,
		store:         store,
		pages:         pages,
		inflight:      inflight,
		maxUpload:     maxUpload,
		uploadTimeout: uploadTimeout,
	}
}

// ListDocuments godoc
// @Summary Список документов
// @Description Без search возвращает все документы. Поиск короче двух символов отклоняется
// @Tags Documents
// @Produce json
// @Param search query string false "Строка поиска" example(sony)
// @Success 200 {object} requestresponse.ListDocumentsResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Слишком короткий запрос"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /api/documents [get]
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	session, err := security.SessionFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	query := r.URL.Query().Get("search")

	docs, err := h.documents.List(r.Context(), session, query)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.NewListDocumentsResponse(query, docs))
}

// UploadDocument godoc
// @Summary Загрузка документа
// @Description Файл записывается напрямую в хранилище по pre-signed URL, затем метаданные сохраняются в API.
// Разрешены PDF, DOC и DOCX до 25MB. Если имя не указано, оно строится из типа, марки и модели
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл документа"
// @Param name formData string false "Название"
// @Param type formData string true "Тип: manual, specs, diagram, firmware, guide"
// @Param category formData string true "Категория"
// @Param brand formData string true "Марка"
// @Param model formData string true "Модель"
// @Param description formData string false "Описание"
// @Param keywords formData string false "Ключевые слова через запятую"
// @Success 201 {object} requestresponse.DocumentResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Ошибка валидации файла или метаданных"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 409 {object} requestresponse.ErrorResponse "Загрузка уже выполняется"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка записи в хранилище или соединения с API"
// @Router /api/documents [post]
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	session, err := security.SessionFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	release, err := h.inflight.Acquire("upload:" + session.Token)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	defer release()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeServiceError(w, h.store, h.pages, apperrors.ErrFileTooLarge)
			return
		}
		sendErrorResponse(w, http.StatusBadRequest, "неверный формат запроса")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeServiceError(w, h.store, h.pages, apperrors.MissingField("file"))
		return
	}
	defer file.Close()

	meta := model.DocumentMetadata{
		Name:        r.FormValue("name"),
		Type:        model.DocumentType(r.FormValue("type")),
		Category:    r.FormValue("category"),
		Brand:       r.FormValue("brand"),
		Model:       r.FormValue("model"),
		Description: r.FormValue("description"),
		Keywords:    model.ParseKeywords(r.FormValue("keywords")),
	}

	input := model.FileInput{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.uploadTimeout)
	defer cancel()

	document, err := h.uploads.Upload(ctx, session, input, meta)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	writeJSON(w, http.StatusCreated, requestresponse.NewDocumentResponse(document))
}

// SuggestName godoc
// @Summary Автоматическое имя документа
// @Description Возвращает "<тип> <марка> <модель>", если имя пустое. Заполненное имя возвращается без изменений
// @Tags Documents
// @Accept json
// @Produce json
// @Param body body requestresponse.NameSuggestionRequest true "Поля формы"
// @Success 200 {object} requestresponse.NameSuggestionResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Router /api/documents/name [post]
func (h *DocumentHandler) SuggestName(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.NameSuggestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	meta := service.SuggestName(model.DocumentMetadata{
		Name:  req.Name,
		Brand: req.Brand,
		Model: req.Model,
		Type:  model.DocumentType(req.Type),
	})

	writeJSON(w, http.StatusOK, requestresponse.NameSuggestionResponse{Name: meta.Name})
}

// UpdateDocument godoc
// @Summary Изменение документа
// @Description Меняет только переданные поля
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "ID документа"
// @Param body body requestresponse.UpdateDocumentRequest true "Изменяемые поля"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 422 {object} requestresponse.ErrorResponse "API отклонило изменение"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /api/documents/{id} [put]
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	session, err := security.SessionFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	var req requestresponse.UpdateDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	id := chi.URLParam(r, "id")

	release, err := h.inflight.Acquire("update:" + session.Token + ":" + id)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	defer release()

	if err := h.documents.Update(r.Context(), session, req.ToModel(id)); err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "Documento actualizado"})
}

// DeleteDocument godoc
// @Summary Удаление документа
// @Tags Documents
// @Produce json
// @Param id path string true "ID документа"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 409 {object} requestresponse.ErrorResponse "Удаление уже выполняется"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /api/documents/{id} [delete]
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	session, err := security.SessionFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	id := chi.URLParam(r, "id")

	release, err := h.inflight.Acquire("delete:" + session.Token + ":" + id)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	defer release()

	if err := h.documents.Delete(r.Context(), session, id); err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "Documento eliminado"})
}

// DownloadDocument godoc
// @Summary Скачивание документа
// @Description Перенаправляет на короткоживущую ссылку чтения из хранилища
// @Tags Documents
// @Param id path string true "ID документа"
// @Success 302 "Redirect на pre-signed URL"
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 502 {object} requestresponse.ErrorResponse "Ошибка соединения с API"
// @Router /api/documents/{id}/download [get]
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	session, err := security.SessionFromContext(r.Context())
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	signedURL, err := h.documents.DownloadURL(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}

	http.Redirect(w, r, signedURL, http.StatusFound)
}

// ListOrphans godoc
// @Summary Незавершенные загрузки
// @Description Файлы, записанные в хранилище, для которых API не сохранило метаданные
// @Tags Documents
// @Produce json
// @Param limit query int false "Максимум записей" default(50)
// @Success 200 {array} model.UploadRecord
// @Failure 401 {object} requestresponse.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 500 {object} requestresponse.ErrorResponse "Ошибка журнала загрузок"
// @Router /api/uploads/orphans [get]
func (h *DocumentHandler) ListOrphans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			sendErrorResponse(w, http.StatusBadRequest, "неверное значение limit")
			return
		}
		limit = parsed
	}

	records, err := h.uploads.Orphans(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.store, h.pages, err)
		return
	}
	if records == nil {
		records = []model.UploadRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}
