// Package vocab holds the static keyword vocabularies the prompt analyzer
// matches against. Pure data, no logic beyond lookups.
package vocab

// Technology identifies a supported technology choice.
type Technology string

const (
	React      Technology = "react"
	Vue        Technology = "vue"
	Angular    Technology = "angular"
	Flutter    Technology = "flutter"
	FastAPI    Technology = "fastapi"
	Flask      Technology = "flask"
	Django     Technology = "django"
	NodeJS     Technology = "nodejs"
	PostgreSQL Technology = "postgresql"
	MongoDB    Technology = "mongodb"
	MySQL      Technology = "mysql"
	SQLite     Technology = "sqlite"
)

// Layer identifies a position in the resolved tech stack.
type Layer string

const (
	LayerFrontend Layer = "frontend"
	LayerBackend  Layer = "backend"
	LayerDatabase Layer = "database"
)

// Layers lists all stack layers in canonical order.
var Layers = []Layer{LayerFrontend, LayerBackend, LayerDatabase}

// TechKeywords maps prompt substrings to technologies. Multiple keywords may
// map to the same technology ("postgres" and "postgresql" both resolve to
// PostgreSQL).
var TechKeywords = map[string]Technology{
	"react":      React,
	"vue":        Vue,
	"angular":    Angular,
	"flutter":    Flutter,
	"fastapi":    FastAPI,
	"flask":      Flask,
	"django":     Django,
	"nodejs":     NodeJS,
	"node.js":    NodeJS,
	"postgresql": PostgreSQL,
	"postgres":   PostgreSQL,
	"mongodb":    MongoDB,
	"mongo":      MongoDB,
	"mysql":      MySQL,
	"sqlite":     SQLite,
}

var layerByTech = map[Technology]Layer{
	React:      LayerFrontend,
	Vue:        LayerFrontend,
	Angular:    LayerFrontend,
	Flutter:    LayerFrontend,
	FastAPI:    LayerBackend,
	Flask:      LayerBackend,
	Django:     LayerBackend,
	NodeJS:     LayerBackend,
	PostgreSQL: LayerDatabase,
	MongoDB:    LayerDatabase,
	MySQL:      LayerDatabase,
	SQLite:     LayerDatabase,
}

// LayerOf returns the stack layer a technology belongs to.
func LayerOf(t Technology) (Layer, bool) {
	l, ok := layerByTech[t]
	return l, ok
}

// DefaultFor returns the fallback technology for a layer when the prompt
// names none.
func DefaultFor(l Layer) Technology {
	switch l {
	case LayerFrontend:
		return React
	case LayerBackend:
		return FastAPI
	default:
		return PostgreSQL
	}
}

// IsValid reports whether t is a known technology.
func IsValid(t Technology) bool {
	_, ok := layerByTech[t]
	return ok
}

// Integration category tags.
const (
	IntegrationPayment          = "payment"
	IntegrationBackendService   = "backend_service"
	IntegrationAuthentication   = "authentication"
	IntegrationEmail            = "email"
	IntegrationSMS              = "sms"
	IntegrationCloud            = "cloud"
	IntegrationContainerization = "containerization"
	IntegrationOrchestration    = "orchestration"
)

// IntegrationKeywords maps vendor and product substrings to integration
// categories.
var IntegrationKeywords = map[string]string{
	"stripe":     IntegrationPayment,
	"paypal":     IntegrationPayment,
	"firebase":   IntegrationBackendService,
	"supabase":   IntegrationBackendService,
	"auth0":      IntegrationAuthentication,
	"oauth":      IntegrationAuthentication,
	"google":     IntegrationAuthentication,
	"github":     IntegrationAuthentication,
	"sendgrid":   IntegrationEmail,
	"mailgun":    IntegrationEmail,
	"twilio":     IntegrationSMS,
	"aws":        IntegrationCloud,
	"azure":      IntegrationCloud,
	"gcp":        IntegrationCloud,
	"docker":     IntegrationContainerization,
	"kubernetes": IntegrationOrchestration,
}

// Feature tags referenced by the plan builder and content generators.
const (
	FeatureAuthentication = "authentication"
	FeatureTaskManagement = "task_management"
	FeatureECommerce      = "e_commerce"
	FeatureFileUpload     = "file_upload"
	FeatureRealTime       = "real_time"
)

// FeatureKeywords maps general words to the feature tags they imply. One
// keyword may imply several tags.
var FeatureKeywords = map[string][]string{
	"user":         {"authentication", "user_management"},
	"login":        {"authentication"},
	"register":     {"authentication", "user_management"},
	"dashboard":    {"frontend", "analytics"},
	"admin":        {"admin_panel", "user_management"},
	"chat":         {"real_time", "messaging"},
	"message":      {"messaging"},
	"notification": {"real_time", "messaging"},
	"file":         {"file_upload", "storage"},
	"image":        {"file_upload", "storage"},
	"upload":       {"file_upload", "storage"},
	"payment":      {"payment_processing"},
	"cart":         {"e_commerce", "shopping"},
	"shop":         {"e_commerce", "shopping"},
	"product":      {"e_commerce", "catalog"},
	"search":       {"search_functionality"},
	"filter":       {"search_functionality"},
	"api":          {"backend", "rest_api"},
	"database":     {"database", "data_storage"},
	"real-time":    {"real_time", "websockets"},
	"responsive":   {"responsive_design"},
	"mobile":       {"responsive_design", "mobile_app"},
}

// ProjectTypeGroup pairs a project type tag with the keywords that select it.
type ProjectTypeGroup struct {
	Type     string
	Keywords []string
}

// ProjectTypeGroups is checked in order; the first group with any keyword
// present in the prompt wins.
var ProjectTypeGroups = []ProjectTypeGroup{
	{Type: "e_commerce", Keywords: []string{"e-commerce", "shop", "store", "cart"}},
	{Type: "social_media", Keywords: []string{"social", "chat", "message", "social media"}},
	{Type: "project_management", Keywords: []string{"task", "project", "todo", "management"}},
	{Type: "content_management", Keywords: []string{"blog", "cms", "content"}},
	{Type: "finance", Keywords: []string{"finance", "budget", "expense"}},
	{Type: "education", Keywords: []string{"education", "learning", "course"}},
}

// DefaultProjectType is used when no project type group matches.
const DefaultProjectType = "web_application"
