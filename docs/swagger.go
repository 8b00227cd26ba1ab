// Package docs TaxTracker API
//
// @title  TaxTracker API
// @version 0.1.0
// @description Tax office back end: staff accounts, client and corporation records, task boards, price lists and dashboards.
// @host      localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package docs

import (
	_ "taxtracker/cmd/server/handlers/httperr"
	_ "taxtracker/internal/services/auth"
	_ "taxtracker/internal/services/catalog"
	_ "taxtracker/internal/services/clients"
	_ "taxtracker/internal/services/corporations"
	_ "taxtracker/internal/services/dashboard"
	_ "taxtracker/internal/services/tasks"
)
