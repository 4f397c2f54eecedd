// Package docs holds the OpenAPI description served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/members": {
            "get": {"tags": ["members"], "summary": "List team members", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["members"], "summary": "Add a team member",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateMemberRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}}
            }
        },
        "/members/{id}": {
            "delete": {
                "tags": ["members"], "summary": "Remove a team member",
                "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/confirm"}],
                "responses": {"200": {"description": "OK"}, "428": {"description": "Confirmation required"}}
            }
        },
        "/session/member": {
            "get": {"tags": ["session"], "summary": "Current member for this client", "responses": {"200": {"description": "OK"}}},
            "put": {
                "tags": ["session"], "summary": "Choose the member this client acts as",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SetCurrentMemberRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown member"}}
            }
        },
        "/tasks": {
            "get": {
                "tags": ["tasks"], "summary": "List tasks",
                "parameters": [
                    {"in": "query", "name": "assignee", "type": "string"},
                    {"in": "query", "name": "status", "type": "string", "enum": ["todo", "in_progress", "done"]},
                    {"in": "query", "name": "category", "type": "string", "enum": ["instagram", "offline-store", "online-store", "youtube", "other"]},
                    {"in": "query", "name": "month", "type": "string", "description": "YYYY-MM"},
                    {"in": "query", "name": "from", "type": "string", "description": "YYYY-MM-DD"},
                    {"in": "query", "name": "to", "type": "string", "description": "YYYY-MM-DD"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["tasks"], "summary": "Create a task",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateTaskRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/tasks/deadlines": {"get": {"tags": ["tasks"], "summary": "Open tasks due within three days", "responses": {"200": {"description": "OK"}}}},
        "/tasks/overdue": {"get": {"tags": ["tasks"], "summary": "Overdue tasks", "responses": {"200": {"description": "OK"}}}},
        "/tasks/{id}": {
            "get": {"tags": ["tasks"], "summary": "Get task by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["tasks"], "summary": "Update task fields", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["tasks"], "summary": "Update task fields", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["tasks"], "summary": "Delete a task", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/confirm"}], "responses": {"200": {"description": "OK"}, "428": {"description": "Confirmation required"}}}
        },
        "/tasks/{id}/status": {"patch": {"tags": ["tasks"], "summary": "Change task status", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}}},
        "/tasks/{id}/files": {
            "post": {
                "tags": ["tasks"], "summary": "Attach a file", "consumes": ["multipart/form-data"],
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "formData", "name": "file", "type": "file", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/tasks/{id}/comments": {
            "get": {"tags": ["tasks"], "summary": "List task comments", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["tasks"], "summary": "Comment on a task", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"201": {"description": "Created"}}}
        },
        "/tasks/{id}/activity": {"get": {"tags": ["tasks"], "summary": "Task activity log", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}}},
        "/kpis": {
            "get": {"tags": ["kpis"], "summary": "List KPIs", "parameters": [{"in": "query", "name": "year", "type": "integer"}, {"in": "query", "name": "quarter", "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["kpis"], "summary": "Create a KPI", "responses": {"201": {"description": "Created"}}}
        },
        "/kpis/summary": {"get": {"tags": ["kpis"], "summary": "Average progress of the matching KPIs", "responses": {"200": {"description": "OK"}}}},
        "/kpis/{id}": {
            "get": {"tags": ["kpis"], "summary": "Get KPI by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["kpis"], "summary": "Update KPI fields", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["kpis"], "summary": "Delete a KPI", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/confirm"}], "responses": {"200": {"description": "OK"}}}
        },
        "/reels": {
            "get": {"tags": ["reels"], "summary": "List reels, newest post first", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["reels"], "summary": "Record a reel", "responses": {"201": {"description": "Created"}}}
        },
        "/reels/summary": {"get": {"tags": ["reels"], "summary": "Engagement totals and chart series", "responses": {"200": {"description": "OK"}}}},
        "/reels/{id}": {
            "get": {"tags": ["reels"], "summary": "Get reel by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["reels"], "summary": "Update reel counters", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["reels"], "summary": "Delete a reel", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/confirm"}], "responses": {"200": {"description": "OK"}}}
        },
        "/meetings/minutes": {
            "get": {"tags": ["meetings"], "summary": "List meeting minutes", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["meetings"], "summary": "Record meeting minutes", "responses": {"201": {"description": "Created"}}}
        },
        "/meetings/minutes/{id}": {
            "get": {"tags": ["meetings"], "summary": "Get minutes by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["meetings"], "summary": "Update meeting minutes", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["meetings"], "summary": "Delete meeting minutes", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/confirm"}], "responses": {"200": {"description": "OK"}}}
        },
        "/meetings/agendas": {
            "get": {"tags": ["meetings"], "summary": "List meeting agendas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["meetings"], "summary": "Create a meeting agenda", "responses": {"201": {"description": "Created"}, "400": {"description": "Agenda has no items"}}}
        },
        "/meetings/agendas/current": {"get": {"tags": ["meetings"], "summary": "This week's meeting and its agenda", "responses": {"200": {"description": "OK"}}}},
        "/meetings/agendas/{id}": {
            "get": {"tags": ["meetings"], "summary": "Get agenda by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["meetings"], "summary": "Update a meeting agenda", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["meetings"], "summary": "Delete a meeting agenda", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/confirm"}], "responses": {"200": {"description": "OK"}}}
        },
        "/ideas": {
            "get": {"tags": ["ideas"], "summary": "List ideas", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["ideas"], "summary": "Post an idea", "responses": {"201": {"description": "Created"}}}
        },
        "/ideas/{id}": {
            "get": {"tags": ["ideas"], "summary": "Get idea by ID", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["ideas"], "summary": "Update an idea", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["ideas"], "summary": "Delete an idea", "parameters": [{"$ref": "#/parameters/id"}, {"$ref": "#/parameters/confirm"}], "responses": {"200": {"description": "OK"}}}
        },
        "/ideas/{id}/image": {
            "post": {
                "tags": ["ideas"], "summary": "Attach an image", "consumes": ["multipart/form-data"],
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "formData", "name": "file", "type": "file", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ideas/{id}/comments": {
            "get": {"tags": ["ideas"], "summary": "List idea comments", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["ideas"], "summary": "Comment on an idea", "parameters": [{"$ref": "#/parameters/id"}], "responses": {"201": {"description": "Created"}}}
        },
        "/ideas/{id}/comments/{commentId}": {
            "delete": {
                "tags": ["ideas"], "summary": "Delete your own comment",
                "parameters": [{"$ref": "#/parameters/id"}, {"in": "path", "name": "commentId", "type": "string", "required": true}, {"$ref": "#/parameters/confirm"}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not the author"}}
            }
        },
        "/dashboard": {"get": {"tags": ["overview"], "summary": "Team dashboard", "responses": {"200": {"description": "OK"}}}},
        "/calendar": {
            "get": {
                "tags": ["overview"], "summary": "Month calendar with tasks per day",
                "parameters": [{"in": "query", "name": "year", "type": "integer"}, {"in": "query", "name": "month", "type": "integer"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/calendar/{date}": {"get": {"tags": ["overview"], "summary": "Tasks due on one day", "parameters": [{"in": "path", "name": "date", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/reports": {"get": {"tags": ["overview"], "summary": "Weekly or monthly report", "parameters": [{"$ref": "#/parameters/period"}], "responses": {"200": {"description": "OK"}}}},
        "/reports/text": {"get": {"tags": ["overview"], "summary": "Report as copyable plain text", "produces": ["text/plain"], "parameters": [{"$ref": "#/parameters/period"}], "responses": {"200": {"description": "OK"}}}}
    },
    "parameters": {
        "id": {"in": "path", "name": "id", "type": "string", "required": true},
        "confirm": {"in": "query", "name": "confirm", "type": "boolean", "required": true, "description": "Must be true"},
        "period": {"in": "query", "name": "period", "type": "string", "enum": ["weekly", "monthly"]}
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "details": {}}
        },
        "CreateMemberRequest": {
            "type": "object", "required": ["name"],
            "properties": {"name": {"type": "string"}, "role": {"type": "string"}}
        },
        "SetCurrentMemberRequest": {
            "type": "object", "required": ["name"],
            "properties": {"name": {"type": "string"}}
        },
        "CreateTaskRequest": {
            "type": "object", "required": ["title", "assignee", "category", "dueDate"],
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "assignee": {"type": "string"},
                "category": {"type": "string"},
                "priority": {"type": "string", "enum": ["urgent", "high", "normal", "low"]},
                "status": {"type": "string", "enum": ["todo", "in_progress", "done"]},
                "dueDate": {"type": "string", "example": "2026-10-14"},
                "isRecurring": {"type": "boolean"},
                "recurringType": {"type": "string", "enum": ["weekly", "monthly"]},
                "recurringDay": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "ClientID": {
            "type": "apiKey",
            "name": "X-Client-ID",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "TeamBoard API",
	Description:      "Shared task board, calendar, meetings, ideas, KPIs and reports for a small team",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
