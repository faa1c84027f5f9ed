// Package docs especificación OpenAPI de la API, servida en /docs.
// swagger.json se regenera desde las anotaciones de los handlers con go generate ./docs.
package docs

//go:generate swag init --dir ../ --generalInfo cmd/api/main.go --output . --outputTypes json

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Backoffice API",
	Description:      "Back office de comercio con control de acceso por rol.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
