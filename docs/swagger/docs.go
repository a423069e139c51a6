// Package swagger holds the OpenAPI document served under /swagger.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/catalog/sync": {
            "post": {
                "description": "Builds, validates and upserts product records. With incremental set, only changed fields of existing products are patched.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Sync Products",
                "parameters": [
                    {"description": "Records and run options", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.SyncRequest"}}
                ],
                "responses": {
                    "200": {"description": "Run result", "schema": {"$ref": "#/definitions/catalog.SyncResult"}},
                    "400": {"description": "Invalid body", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Graph API failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/catalog/validate": {
            "post": {
                "description": "Runs the structural validator over JSON-LD documents and returns per-entity results and a text report.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Validate Documents",
                "parameters": [
                    {"description": "Documents to validate", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.ValidateRequest"}}
                ],
                "responses": {
                    "200": {"description": "Validation result", "schema": {"$ref": "#/definitions/catalog.ValidateResult"}},
                    "400": {"description": "Invalid body", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/catalog/ids/product/{code}": {
            "get": {
                "description": "Mints the Digital Link identifier for a GTIN, optionally qualified by serial and lot.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Product Identifier",
                "parameters": [
                    {"type": "string", "description": "GTIN-8, 12, 13 or 14", "name": "code", "in": "path", "required": true},
                    {"type": "string", "description": "Serial number", "name": "serial", "in": "query"},
                    {"type": "string", "description": "Lot number", "name": "lot", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Identifier", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Invalid trade code", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/catalog/reports": {
            "get": {
                "description": "Lists the run reports stored in object storage, newest first.",
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List Run Reports",
                "responses": {
                    "200": {"description": "Reports", "schema": {"type": "array", "items": {"$ref": "#/definitions/catalog.ReportInfo"}}},
                    "503": {"description": "No report store configured", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/catalog/entities/upgrade": {
            "post": {
                "description": "Fetches an entity, sets a new type and extra properties, keeps its name, description, url and image, and writes it back.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Upgrade Entity",
                "parameters": [
                    {"description": "Entity, new type and properties", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.UpgradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "Written document", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Invalid request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Entity not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Graph API failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/catalog/entities": {
            "post": {
                "description": "Creates JSON-LD entities. Documents without @context get the schema.org context.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create Entities",
                "parameters": [
                    {"description": "Documents to create", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.EntitiesRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created identifiers", "schema": {"$ref": "#/definitions/catalog.WriteResult"}},
                    "400": {"description": "Invalid document", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Graph API failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "put": {
                "description": "Creates or replaces JSON-LD entities. Every document needs an absolute @id.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Upsert Entities",
                "parameters": [
                    {"description": "Documents to upsert", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/catalog.EntitiesRequest"}}
                ],
                "responses": {
                    "200": {"description": "Written identifiers", "schema": {"$ref": "#/definitions/catalog.WriteResult"}},
                    "400": {"description": "Invalid document", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Graph API failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "patch": {
                "description": "Replaces each property of the JSON-LD body on the entity named by its @id. Null properties are removed.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Patch Entity",
                "parameters": [
                    {"description": "JSON-LD document with @id", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "Applied operations", "schema": {"$ref": "#/definitions/catalog.PatchResult"}},
                    "400": {"description": "Invalid document", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Entity not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Graph API failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "description": "Deletes an entity from the knowledge graph.",
                "tags": ["catalog"],
                "summary": "Delete Entity",
                "parameters": [
                    {"type": "string", "description": "Entity IRI", "name": "id", "in": "query", "required": true}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "400": {"description": "Invalid IRI", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Entity not found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Graph API failure", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/verify": {
            "get": {
                "description": "Checks the IRI pattern, dereferences the .html and .json views and optionally looks the entity up in the GraphQL index.",
                "produces": ["application/json"],
                "tags": ["verify"],
                "summary": "Verify Entity",
                "parameters": [
                    {"type": "string", "description": "Entity IRI", "name": "iri", "in": "query", "required": true},
                    {"type": "boolean", "default": true, "description": "Also check the GraphQL index", "name": "graphql", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Entity persisted", "schema": {"$ref": "#/definitions/verify.Report"}},
                    "400": {"description": "Missing IRI", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Entity not persisted", "schema": {"$ref": "#/definitions/verify.Report"}}
                }
            }
        }
    },
    "definitions": {
        "catalog.SyncRequest": {
            "type": "object",
            "properties": {
                "records": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "incremental": {"type": "boolean"},
                "dry_run": {"type": "boolean"},
                "report": {"type": "boolean"}
            }
        },
        "catalog.SyncResult": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "stats": {"$ref": "#/definitions/reconcile.Stats"},
                "validation": {"$ref": "#/definitions/validation.BatchResult"},
                "reports": {"type": "array", "items": {"type": "string"}}
            }
        },
        "catalog.ValidateRequest": {
            "type": "object",
            "properties": {
                "documents": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "strict": {"type": "boolean"}
            }
        },
        "catalog.ValidateResult": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "valid": {"type": "integer"},
                "invalid": {"type": "integer"},
                "entities": {"type": "array", "items": {"$ref": "#/definitions/validation.EntityResult"}},
                "report": {"type": "string"}
            }
        },
        "catalog.EntitiesRequest": {
            "type": "object",
            "properties": {
                "documents": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "catalog.WriteResult": {
            "type": "object",
            "properties": {
                "written": {"type": "array", "items": {"type": "string"}}
            }
        },
        "catalog.PatchResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "ops": {"type": "array", "items": {"$ref": "#/definitions/kg.PatchOp"}}
            }
        },
        "catalog.UpgradeRequest": {
            "type": "object",
            "properties": {
                "iri": {"type": "string"},
                "type": {"type": "string"},
                "properties": {"type": "object", "additionalProperties": true}
            }
        },
        "catalog.ReportInfo": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "key": {"type": "string"},
                "size": {"type": "integer"},
                "last_modified": {"type": "string"}
            }
        },
        "kg.PatchOp": {
            "type": "object",
            "properties": {
                "op": {"type": "string"},
                "path": {"type": "string"},
                "value": {}
            }
        },
        "reconcile.Stats": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "created": {"type": "integer"},
                "updated": {"type": "integer"},
                "errors": {"type": "integer"},
                "skipped": {"type": "integer"},
                "no_changes": {"type": "integer"}
            }
        },
        "validation.BatchResult": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "valid": {"type": "integer"},
                "invalid": {"type": "integer"},
                "entities": {"type": "array", "items": {"$ref": "#/definitions/validation.EntityResult"}}
            }
        },
        "validation.EntityResult": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "id": {"type": "string"},
                "type": {"type": "string"},
                "valid": {"type": "boolean"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/validation.Issue"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/validation.Issue"}}
            }
        },
        "validation.Issue": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "verify.Report": {
            "type": "object",
            "properties": {
                "iri": {"type": "string"},
                "valid_pattern": {"type": "boolean"},
                "dereferenceable": {"type": "boolean"},
                "graphql_indexed": {"type": "boolean"},
                "checks": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "kg-sync API",
	Description:      "Product catalog sync to a schema.org knowledge graph.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
