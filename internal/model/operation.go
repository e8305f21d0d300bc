package model

type RequestBody struct {
	Description string             `json:"description,omitempty"`
	Required    bool               `json:"required"`
	Content     []MediaTypeContent `json:"content,omitempty"`
}

type MediaTypeContent struct {
	MediaType string  `json:"mediaType"`
	Schema    *Schema `json:"schema,omitempty"`
}

type Response struct {
	StatusCode  string             `json:"statusCode"`
	Description string             `json:"description,omitempty"`
	Content     []MediaTypeContent `json:"content,omitempty"`
	Headers     []Header           `json:"headers,omitempty"`
}

type Header struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required"`
	Schema      *Schema `json:"schema,omitempty"`
}
