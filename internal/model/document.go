package model

import (
	"strings"
	"time"
)

// DocumentType : тип технического документа
type DocumentType string

const (
	DocumentTypeManual   DocumentType = "manual"
	DocumentTypeSpecs    DocumentType = "specs"
	DocumentTypeDiagram  DocumentType = "diagram"
	DocumentTypeFirmware DocumentType = "firmware"
	DocumentTypeGuide    DocumentType = "guide"
)

const defaultDocumentLabel = "Documento"

var documentTypeLabels = map[DocumentType]string{
	DocumentTypeManual:   "Manual de Usuario",
	DocumentTypeSpecs:    "Especificaciones Técnicas",
	DocumentTypeDiagram:  "Diagrama de Conexiones",
	DocumentTypeFirmware: "Firmware y Actualizaciones",
	DocumentTypeGuide:    "Guía Rápida",
}

// Label : название типа для автоматического имени документа
func (t DocumentType) Label() string {
	if label, ok := documentTypeLabels[t]; ok {
		return label
	}
	return defaultDocumentLabel
}

func (t DocumentType) Valid() bool {
	_, ok := documentTypeLabels[t]
	return ok
}

// DocumentMetadata : поля документа, которые заполняет пользователь
type DocumentMetadata struct {
	Name        string       `json:"name"`
	Type        DocumentType `json:"type"`
	Category    string       `json:"category"`
	Brand       string       `json:"brand"`
	Model       string       `json:"model"`
	Description string       `json:"description"`
	Keywords    []string     `json:"keywords"`
}

type Document struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        DocumentType `json:"type"`
	Category    string       `json:"category"`
	Brand       string       `json:"brand"`
	Model       string       `json:"model"`
	Description string       `json:"description"`
	Keywords    []string     `json:"keywords"`
	FileName    string       `json:"file_name"`
	FileURL     string       `json:"file_url"`
	FileSize    int64        `json:"file_size"`
	FileType    string       `json:"file_type"`
	CreatedAt   time.Time    `json:"created_at"`
}

// DocumentUpdate : изменяемые поля документа, nil означает "не менять"
type DocumentUpdate struct {
	ID          string        `json:"id"`
	Name        *string       `json:"name,omitempty"`
	Type        *DocumentType `json:"type,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Brand       *string       `json:"brand,omitempty"`
	Model       *string       `json:"model,omitempty"`
	Description *string       `json:"description,omitempty"`
	Keywords    *[]string     `json:"keywords,omitempty"`
}

// ParseKeywords : разбивает строку по запятым, пустые элементы отбрасываются
func ParseKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		if keyword := strings.TrimSpace(part); keyword != "" {
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}
