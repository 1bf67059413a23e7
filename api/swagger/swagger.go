package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "StudyHive API",
        "description": "Online classroom marketplace backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Token issuance"},
        {"name": "Users", "description": "Accounts and roles"},
        {"name": "Teacher Applications", "description": "Teach on StudyHive workflow"},
        {"name": "Classes", "description": "Class authoring and moderation"},
        {"name": "Assignments", "description": "Classwork and submissions"},
        {"name": "Enrollments", "description": "Paid seats in classes"},
        {"name": "Payments", "description": "Checkout intents"}
    ],
    "paths": {
        "/": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness banner",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/metrics": {
            "get": {
                "tags": ["System"],
                "summary": "Prometheus metrics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/jwt": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Issue access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/TokenRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users-admin": {
            "get": {
                "tags": ["Users"],
                "summary": "Search users (admin)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/user/{email}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user by email",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/user": {
            "put": {
                "tags": ["Users"],
                "summary": "Register user on first sign-in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SaveUserRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users/admin/{id}": {
            "patch": {
                "tags": ["Users"],
                "summary": "Promote user to admin",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users/{id}": {
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/apply-teach": {
            "post": {
                "tags": ["Teacher Applications"],
                "summary": "Submit teacher application",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyTeachRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Teacher Applications"],
                "summary": "Submit teacher application once",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApplyTeachRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "get": {
                "tags": ["Teacher Applications"],
                "summary": "List teacher applications",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/apply-teach/{id}/{teacherEmail}": {
            "patch": {
                "tags": ["Teacher Applications"],
                "summary": "Approve teacher application",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "teacherEmail", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reject-teach/{id}/{teacherEmail}": {
            "patch": {
                "tags": ["Teacher Applications"],
                "summary": "Reject teacher application",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "teacherEmail", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reviews": {
            "get": {
                "tags": ["Reviews"],
                "summary": "List reviews",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/review": {
            "post": {
                "tags": ["Reviews"],
                "summary": "Review a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReviewRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/review/{classId}": {
            "get": {
                "tags": ["Reviews"],
                "summary": "Reviews of a class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes": {
            "post": {
                "tags": ["Classes"],
                "summary": "Create class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/all-classes/accepted": {
            "get": {
                "tags": ["Classes"],
                "summary": "Browse accepted classes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/all-classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "List every class",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/update-classes/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Update class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes-update/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get class for editing",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/my-classes/{id}": {
            "delete": {
                "tags": ["Classes"],
                "summary": "Delete class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/my-classes/{email}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Classes of the calling teacher",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/my-classes/{email}/roster/{id}": {
            "get": {
                "tags": ["Classes"],
                "summary": "Download class roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes-accept/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Accept class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/classes-reject/{id}": {
            "patch": {
                "tags": ["Classes"],
                "summary": "Reject class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/add-assignment/{id}": {
            "put": {
                "tags": ["Assignments"],
                "summary": "Add assignment to class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAssignmentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/assignment/{classId}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Assignments of a class",
                "parameters": [
                    {"name": "classId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/assignment-submissions/{assignmentId}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Submissions of an assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "assignmentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/submit-assignment/{id}": {
            "put": {
                "tags": ["Assignments"],
                "summary": "Submit assignment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitAssignmentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/create-payment-intent": {
            "post": {
                "tags": ["Payments"],
                "summary": "Create payment intent",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PaymentIntentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/enroll-class/{id}": {
            "put": {
                "tags": ["Enrollments"],
                "summary": "Enroll in class",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "get": {
                "tags": ["Enrollments"],
                "summary": "Get enrollment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/my-enroll-class/{email}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Enrollments of the caller",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/enroll-class": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List every enrollment",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/public-stat": {
            "get": {
                "tags": ["Stats"],
                "summary": "Public counters",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "TokenRequest": {"type": "object", "required": ["email"], "properties": {"email": {"type": "string"}, "name": {"type": "string"}}},
        "SaveUserRequest": {"type": "object", "required": ["email"], "properties": {"email": {"type": "string"}, "name": {"type": "string"}, "photo": {"type": "string"}}},
        "ApplyTeachRequest": {"type": "object", "required": ["title", "experience", "category"], "properties": {"name": {"type": "string"}, "photo": {"type": "string"}, "title": {"type": "string"}, "experience": {"type": "string"}, "category": {"type": "string"}}},
        "CreateReviewRequest": {"type": "object", "required": ["classId", "content"], "properties": {"classId": {"type": "string"}, "class_title": {"type": "string"}, "name": {"type": "string"}, "photo": {"type": "string"}, "rating": {"type": "number"}, "content": {"type": "string"}}},
        "CreateClassRequest": {"type": "object", "required": ["title", "description"], "properties": {"title": {"type": "string"}, "name": {"type": "string"}, "teacher_photo": {"type": "string"}, "price": {"type": "number"}, "description": {"type": "string"}, "image": {"type": "string"}}},
        "UpdateClassRequest": {"type": "object", "properties": {"title": {"type": "string"}, "price": {"type": "number"}, "description": {"type": "string"}, "image": {"type": "string"}}},
        "CreateAssignmentRequest": {"type": "object", "required": ["title"], "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "deadline": {"type": "string"}}},
        "SubmitAssignmentRequest": {"type": "object", "required": ["content"], "properties": {"name": {"type": "string"}, "content": {"type": "string"}}},
        "PaymentIntentRequest": {"type": "object", "required": ["price"], "properties": {"price": {"type": "number"}}},
        "EnrollRequest": {"type": "object", "properties": {"name": {"type": "string"}, "price": {"type": "number"}, "transaction_id": {"type": "string"}}},
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
