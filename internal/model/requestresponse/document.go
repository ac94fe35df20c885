package requestresponse

import "docs-portal/internal/model"

// ListDocumentsResponse : список документов
type ListDocumentsResponse struct {
	Data struct {
		Docs []model.Document `json:"docs"`
	} `json:"data"`
	Query string `json:"query,omitempty" example:"sony"`
	Count int    `json:"count" example:"10"`
}

func NewListDocumentsResponse(query string, docs []model.Document) ListDocumentsResponse {
	var resp ListDocumentsResponse
	if docs == nil {
		docs = []model.Document{}
	}
	resp.Data.Docs = docs
	resp.Query = query
	resp.Count = len(docs)
	return resp
}

// DocumentResponse : один документ
type DocumentResponse struct {
	Data struct {
		Document *model.Document `json:"document"`
	} `json:"data"`
}

func NewDocumentResponse(document *model.Document) DocumentResponse {
	var resp DocumentResponse
	resp.Data.Document = document
	return resp
}

// UpdateDocumentRequest : изменяемые поля, отсутствующие поля не меняются
type UpdateDocumentRequest struct {
	Name        *string             `json:"name,omitempty" example:"Manual de Usuario Sony X900"`
	Type        *model.DocumentType `json:"type,omitempty" example:"manual"`
	Category    *string             `json:"category,omitempty" example:"tv"`
	Brand       *string             `json:"brand,omitempty" example:"Sony"`
	Model       *string             `json:"model,omitempty" example:"X900"`
	Description *string             `json:"description,omitempty"`
	Keywords    *[]string           `json:"keywords,omitempty"`
}

func (r UpdateDocumentRequest) ToModel(id string) model.DocumentUpdate {
	return model.DocumentUpdate{
		ID:          id,
		Name:        r.Name,
		Type:        r.Type,
		Category:    r.Category,
		Brand:       r.Brand,
		Model:       r.Model,
		Description: r.Description,
		Keywords:    r.Keywords,
	}
}

// NameSuggestionRequest : поля формы загрузки для генерации имени
type NameSuggestionRequest struct {
	Name  string `json:"name"`
	Brand string `json:"brand" example:"Sony"`
	Model string `json:"model" example:"X900"`
	Type  string `json:"type" example:"manual"`
}

// NameSuggestionResponse : имя документа после автогенерации
type NameSuggestionResponse struct {
	Name string `json:"name" example:"Manual de Usuario Sony X900"`
}
