package render

import _ "embed"

// DashboardHTML is the single-page dashboard. It reads /api/v1/options and
// /api/v1/views/:view and draws charts with Chart.js.
//
//go:embed assets/dashboard.html
var DashboardHTML []byte
