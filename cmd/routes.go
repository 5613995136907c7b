package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"bulletinboard/internal/handlers"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminMiddleware := standardMiddleware.Append(app.adminBasicAuth)

	mux := pat.New()

	mux.Get("/health", standardMiddleware.ThenFunc(handlers.Health))

	// Ads. Static segments are registered before the :id routes so pat
	// does not swallow them as parameters.
	mux.Post("/api/ads", standardMiddleware.ThenFunc(app.adHandler.CreateAd))
	mux.Get("/api/ads", standardMiddleware.ThenFunc(app.adHandler.GetAds))
	mux.Get("/api/ads/active", standardMiddleware.ThenFunc(app.adHandler.GetActiveAds))
	mux.Get("/api/ads/search", standardMiddleware.ThenFunc(app.adHandler.SearchAds))
	mux.Get("/api/ads/edit/:token", standardMiddleware.ThenFunc(app.adHandler.GetAdByEditToken))
	mux.Put("/api/ads/edit/:token", standardMiddleware.ThenFunc(app.adHandler.UpdateAdByEditToken))
	mux.Del("/api/ads/edit/:token", standardMiddleware.ThenFunc(app.adHandler.DeleteAdByEditToken))
	mux.Get("/api/ads/:id", standardMiddleware.ThenFunc(app.adHandler.GetAdByID))
	mux.Put("/api/ads/:id", standardMiddleware.ThenFunc(app.adHandler.UpdateAd))
	mux.Del("/api/ads/:id", standardMiddleware.ThenFunc(app.adHandler.DeleteAd))

	// Images
	mux.Post("/api/ads/:id/images", standardMiddleware.ThenFunc(app.adImageHandler.UploadImages))
	mux.Del("/api/ads/:ad_id/images/:image_id", standardMiddleware.ThenFunc(app.adImageHandler.DeleteImage))
	mux.Get("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.cfg.Storage.LocalDir))))

	// Categories
	mux.Post("/api/categories", standardMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/api/categories", standardMiddleware.ThenFunc(app.categoryHandler.GetCategories))
	mux.Get("/api/categories/:id", standardMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/api/categories/:id", standardMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/api/categories/:id", standardMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	// Users
	mux.Post("/api/users", standardMiddleware.ThenFunc(app.userHandler.CreateUser))
	mux.Get("/api/users", standardMiddleware.ThenFunc(app.userHandler.GetUsers))
	mux.Get("/api/users/:id", standardMiddleware.ThenFunc(app.userHandler.GetUserByID))
	mux.Put("/api/users/:id", standardMiddleware.ThenFunc(app.userHandler.UpdateUser))
	mux.Del("/api/users/:id", standardMiddleware.ThenFunc(app.userHandler.DeleteUser))

	// Admin
	mux.Get("/api/admin/ads", adminMiddleware.ThenFunc(app.adminHandler.ListAds))
	mux.Put("/api/admin/ads/:id/status", adminMiddleware.ThenFunc(app.adminHandler.SetStatus))
	mux.Del("/api/admin/ads/:id", adminMiddleware.ThenFunc(app.adminHandler.DeleteAd))

	return mux
}
