// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/branchout-app/branchout/internal/app/features/accounts"
	commentsfeature "github.com/branchout-app/branchout/internal/app/features/comments"
	groupsfeature "github.com/branchout-app/branchout/internal/app/features/groups"
	healthfeature "github.com/branchout-app/branchout/internal/app/features/health"
	loginfeature "github.com/branchout-app/branchout/internal/app/features/login"
	logoutfeature "github.com/branchout-app/branchout/internal/app/features/logout"
	mapsfeature "github.com/branchout-app/branchout/internal/app/features/maps"
	milestonesfeature "github.com/branchout-app/branchout/internal/app/features/milestones"
	postsfeature "github.com/branchout-app/branchout/internal/app/features/posts"
	"github.com/branchout-app/branchout/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It creates the session manager, applies
// the session-loading middleware, and mounts the feature routers for every
// part of the API: accounts, auth, groups, milestones, posts, comments, and
// location search.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if signed in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Accounts: registration and lookup
	accountsHandler := accountsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/users", accountsfeature.Routes(accountsHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler, sessionMgr))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Group registry
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, sessionMgr))

	// Milestone ledgers
	milestonesHandler := milestonesfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/milestones", milestonesfeature.Routes(milestonesHandler, sessionMgr))

	// Content
	postsHandler := postsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/posts", postsfeature.Routes(postsHandler, sessionMgr))

	commentsHandler := commentsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/comments", commentsfeature.Routes(commentsHandler, sessionMgr))

	// Location and nearby search
	mapsHandler := mapsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/location", mapsfeature.Routes(mapsHandler, sessionMgr))

	return r, nil
}
