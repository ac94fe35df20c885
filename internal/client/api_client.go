package client

import (
	"bytes"
	"context"
	"docs-portal/internal/apperrors"
	"docs-portal/internal/model"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultResponseLimit : предел тела ответа API, список документов помещается с запасом
const DefaultResponseLimit = 32 << 20

// APIClient : клиент внешнего API авторизации и документов
type APIClient struct {
	baseURL       string
	httpClient    *http.Client
	responseLimit int64
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		responseLimit: DefaultResponseLimit,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// NewAPIClientWithHTTP : для тестов и нестандартного транспорта
func NewAPIClientWithHTTP(baseURL string, httpClient *http.Client) *APIClient {
	return &APIClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient, responseLimit: DefaultResponseLimit}
}

// WithResponseLimit : другой предел тела ответа в байтах
func (c *APIClient) WithResponseLimit(limit int64) *APIClient {
	c.responseLimit = limit
	return c
}

func (c *APIClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, "", loginRequest{email, password}, &resp); err != nil {
		return nil, err
	}
	if resp.Success == false || resp.Token == "" {
		return nil, rejected(resp.Error, "Error en el login")
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

func (c *APIClient) Register(ctx context.Context, name, email, password, company string) (*AuthResult, error) {
	body := registerRequest{Name: name, Email: email, Password: password, Company: company}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/register", nil, "", body, &resp); err != nil {
		return nil, err
	}
	if resp.Success == false {
		return nil, rejected(resp.Error, "Error en el registro")
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

// Profile : проверка токена, API возвращает пользователя только для действительного токена
func (c *APIClient) Profile(ctx context.Context, token string) (*model.User, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "/profile", nil, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return resp.User, nil
}

// VerifyCode : токен и пользователь в ответе необязательны
func (c *APIClient) VerifyCode(ctx context.Context, email, code string) (*AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/verify-code", nil, "", verifyCodeRequest{email, code}, &resp); err != nil {
		return nil, err
	}
	if resp.Success == false {
		return nil, rejected(resp.Error, "Error en la verificación")
	}
	return &AuthResult{Token: resp.Token, User: resp.User}, nil
}

func (c *APIClient) UpdateRole(ctx context.Context, token, userID string, role model.Role, email string) (*model.User, error) {
	body := updateRoleRequest{UserID: userID, Role: role, Email: email}

	var resp updateRoleResponse
	if err := c.do(ctx, http.MethodPost, "/update-role", nil, token, body, &resp); err != nil {
		return nil, err
	}
	if resp.Success == false {
		return nil, rejected(resp.Error, "Error al actualizar el rol")
	}
	return &model.User{Email: email, Name: resp.User.Name, Role: resp.User.Role}, nil
}

func (c *APIClient) ListDocuments(ctx context.Context, token, search string) ([]model.Document, error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}

	var resp documentsResponse
	if err := c.do(ctx, http.MethodGet, "/documents", query, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Success == false {
		return nil, rejected(resp.Error, "Error al cargar documentos")
	}
	if resp.Documents == nil {
		return []model.Document{}, nil
	}
	return resp.Documents, nil
}

// CreateDocument : сохраняет метаданные документа, файл к этому моменту уже в хранилище
func (c *APIClient) CreateDocument(ctx context.Context, token string, req FinalizeDocumentRequest) (*model.Document, error) {
	var resp documentResponse
	if err := c.do(ctx, http.MethodPost, "/documents", nil, token, req, &resp); err != nil {
		return nil, err
	}
	if resp.Success == false || resp.Document == nil {
		return nil, rejected(resp.Error, "Error al subir el documento")
	}
	return resp.Document, nil
}

func (c *APIClient) UpdateDocument(ctx context.Context, token string, update model.DocumentUpdate) error {
	var resp successResponse
	if err := c.do(ctx, http.MethodPut, "/documents", nil, token, update, &resp); err != nil {
		return err
	}
	if resp.Success == false {
		return rejected(resp.Error, "Error al actualizar")
	}
	return nil
}

func (c *APIClient) DeleteDocument(ctx context.Context, token, id string) error {
	var resp successResponse
	if err := c.do(ctx, http.MethodDelete, "/documents", nil, token, deleteDocumentRequest{ID: id}, &resp); err != nil {
		return err
	}
	if resp.Success == false {
		return rejected(resp.Error, "Error al eliminar")
	}
	return nil
}

// DownloadURL : короткоживущая ссылка на чтение, сами ссылки на хранилище клиент не строит
func (c *APIClient) DownloadURL(ctx context.Context, token, documentID string) (string, error) {
	query := url.Values{}
	query.Set("download", "true")
	query.Set("documentId", documentID)

	var resp downloadResponse
	if err := c.do(ctx, http.MethodGet, "/documents", query, token, nil, &resp); err != nil {
		return "", err
	}
	if resp.Success == false || resp.SignedURL == "" {
		return "", rejected(resp.Error, "Error al generar la descarga")
	}
	return resp.SignedURL, nil
}

// RequestUploadGrant : получение pre-signed URL для записи одного файла
func (c *APIClient) RequestUploadGrant(ctx context.Context, token, fileType string) (*model.UploadGrant, error) {
	query := url.Values{}
	query.Set("fileType", fileType)

	var grant model.UploadGrant
	if err := c.do(ctx, http.MethodGet, "/upload-url", query, token, nil, &grant); err != nil {
		return nil, err
	}
	if grant.SignedURL == "" || grant.PublicURL == "" || grant.DocumentID == "" {
		return nil, fmt.Errorf("%w: неполный ответ upload-url", apperrors.ErrNetwork)
	}
	return &grant, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, token string, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка сериализации запроса: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", apperrors.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.responseLimit+1))
	if err != nil {
		return fmt.Errorf("%w: ошибка чтения ответа: %w", apperrors.ErrNetwork, err)
	}
	if int64(len(data)) > c.responseLimit {
		return fmt.Errorf("%w: %s %s, больше %d байт", apperrors.ErrResponseTooLarge, method, path, c.responseLimit)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorBody
		if len(data) > 0 && json.Unmarshal(data, &errBody) == nil {
			message := errBody.Error
			if message == "" {
				message = errBody.Message
			}
			return &apperrors.APIError{Status: resp.StatusCode, Message: message}
		}
		return &apperrors.APIError{Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: ошибка разбора ответа %s: %w", apperrors.ErrNetwork, path, err)
	}
	return nil
}

func rejected(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return fmt.Errorf("%w: %s", apperrors.ErrRejected, message)
}
