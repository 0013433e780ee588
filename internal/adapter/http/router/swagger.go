package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Core Banking API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Core Banking API",
    "version": "1.0.0"
  },
  "paths": {
    "/accounts": {
      "post": {
        "summary": "Open account",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["customerId", "accountName", "accountType", "currency"],
                "properties": {
                  "customerId": {"type": "string"},
                  "accountName": {"type": "string"},
                  "accountType": {"type": "string", "enum": ["CHECKING", "SAVINGS", "MONEY_MARKET", "BUSINESS"]},
                  "currency": {"type": "string", "example": "USD"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List accounts for a customer",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "customerId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Accounts fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/detail": {
      "get": {
        "summary": "Get account by account number",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "customerId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "accountNumber", "in": "query", "required": true, "schema": {"type": "string", "pattern": "^[0-9]{10}$"}}
        ],
        "responses": {
          "200": {"description": "Account fetched"},
          "404": {"description": "Account not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/action": {
      "post": {
        "summary": "Activate, freeze, unfreeze or close an account",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["customerId", "accountNumber", "action"],
                "properties": {
                  "customerId": {"type": "string"},
                  "accountNumber": {"type": "string"},
                  "action": {"type": "string", "enum": ["activate", "freeze", "unfreeze", "close"]},
                  "reason": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Account updated"},
          "400": {"description": "Validation error or account not operable"},
          "404": {"description": "Account not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/accounts/limits": {
      "post": {
        "summary": "Update account name or daily limits",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Account updated"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/deposit": {
      "post": {
        "summary": "Deposit into an account",
        "security": [{"BasicAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["userId", "accountNumber", "amount"],
                "properties": {
                  "userId": {"type": "string"},
                  "accountNumber": {"type": "string", "pattern": "^[0-9]{10}$"},
                  "amount": {"type": "string", "example": "100.00"},
                  "description": {"type": "string"},
                  "channel": {"type": "string", "enum": ["WEB", "MOBILE", "ATM", "BRANCH", "API"]}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Movement booked"},
          "400": {"description": "Validation error or business rejection"},
          "404": {"description": "Account not found"},
          "401": {"description": "Unauthorized"},
          "503": {"description": "Account busy, retry"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/withdraw": {
      "post": {
        "summary": "Withdraw from an account",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Movement booked"},
          "400": {"description": "Validation error or business rejection"},
          "422": {"description": "Insufficient funds"},
          "401": {"description": "Unauthorized"},
          "503": {"description": "Account busy, retry"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/transfer": {
      "post": {
        "summary": "Transfer to a beneficiary account",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Movement booked"},
          "400": {"description": "Validation error or business rejection"},
          "403": {"description": "Transfer not allowed"},
          "422": {"description": "Insufficient funds"},
          "401": {"description": "Unauthorized"},
          "503": {"description": "Account busy, retry"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/reverse": {
      "post": {
        "summary": "Reverse a completed movement",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Reversal booked"},
          "404": {"description": "Transaction not found"},
          "409": {"description": "Transaction not reversible"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions": {
      "get": {
        "summary": "List movements for an account",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "accountNumber", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "limit", "in": "query", "required": false, "schema": {"type": "integer"}}
        ],
        "responses": {
          "200": {"description": "Movements fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/detail": {
      "get": {
        "summary": "Get a movement by transaction id",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "transactionId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Movement fetched"},
          "404": {"description": "Transaction not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/beneficiaries": {
      "post": {
        "summary": "Save a beneficiary",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Created"},
          "409": {"description": "Beneficiary already exists"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List beneficiaries",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Beneficiaries fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "delete": {
        "summary": "Delete a beneficiary",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "id", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Deleted"},
          "404": {"description": "Beneficiary not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/cards": {
      "post": {
        "summary": "Issue a card",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List cards",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Cards fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/cards/action": {
      "post": {
        "summary": "Activate, block or unblock a card",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Card updated"},
          "400": {"description": "Validation error"},
          "404": {"description": "Card not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/cards/limits": {
      "post": {
        "summary": "Update card spending limits",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Card updated"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/loans": {
      "post": {
        "summary": "Apply for a loan",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List loans",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "customerId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Loans fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/loans/approve": {
      "post": {
        "summary": "Approve a pending loan",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Loan approved"},
          "400": {"description": "Loan not in a pending state"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/loans/disburse": {
      "post": {
        "summary": "Disburse an approved loan",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Loan disbursed"},
          "400": {"description": "Loan not in an approved state"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/loans/repay": {
      "post": {
        "summary": "Repay a loan installment",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Repayment booked"},
          "400": {"description": "Loan not active"},
          "422": {"description": "Insufficient funds"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/loans/schedule": {
      "get": {
        "summary": "Get loan repayment schedule",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "customerId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "loanId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Schedule fetched"},
          "404": {"description": "Loan not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/notifications": {
      "get": {
        "summary": "List notifications",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "unread", "in": "query", "required": false, "schema": {"type": "boolean"}},
          {"name": "limit", "in": "query", "required": false, "schema": {"type": "integer"}}
        ],
        "responses": {
          "200": {"description": "Notifications fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/notifications/read": {
      "post": {
        "summary": "Mark a notification read",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Notification updated"},
          "404": {"description": "Notification not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/notifications/read-all": {
      "post": {
        "summary": "Mark all notifications read",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Notifications updated"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/support-tickets": {
      "post": {
        "summary": "Open a support ticket",
        "security": [{"BasicAuth": []}],
        "responses": {
          "201": {"description": "Created"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      },
      "get": {
        "summary": "List support tickets",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Tickets fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/support-tickets/detail": {
      "get": {
        "summary": "Get a support ticket by number",
        "security": [{"BasicAuth": []}],
        "parameters": [
          {"name": "userId", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "ticketNumber", "in": "query", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Ticket fetched"},
          "404": {"description": "Ticket not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/support-tickets/status": {
      "post": {
        "summary": "Update support ticket status",
        "security": [{"BasicAuth": []}],
        "responses": {
          "200": {"description": "Ticket updated"},
          "400": {"description": "Validation error"},
          "404": {"description": "Ticket not found"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    }
  }
}`
