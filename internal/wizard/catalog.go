package wizard

import (
	"slices"
	"strings"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/model"
)

var catalog = []model.CatalogApp{
	{Name: "WhatsApp", PackageID: "com.whatsapp", Category: "Social"},
	{Name: "Facebook", PackageID: "com.facebook.katana", Category: "Social"},
	{Name: "Instagram", PackageID: "com.instagram.android", Category: "Social"},
	{Name: "TikTok", PackageID: "com.zhiliaoapp.musically", Category: "Video"},
	{Name: "Messenger", PackageID: "com.facebook.orca", Category: "Social"},
	{Name: "Telegram", PackageID: "org.telegram.messenger", Category: "Social"},
	{Name: "Shopee", PackageID: "com.shopee.id", Category: "Shopping"},
	{Name: "Mobile Legends", PackageID: "com.mobile.legends", Category: "Game"},
	{Name: "PUBG Mobile", PackageID: "com.tencent.ig", Category: "Game"},
	{Name: "Free Fire", PackageID: "com.dts.freefireth", Category: "Game"},
	{Name: "Gojek", PackageID: "com.gojek.app", Category: "Lifestyle"},
	{Name: "Dana", PackageID: "id.dana", Category: "Finance"},
}

// Catalog returns the "installed" applications offered by the wizard.
func Catalog() []model.CatalogApp {
	return slices.Clone(catalog)
}

// Search filters the catalog by name, package id or category, ignoring case.
// An empty query returns everything.
func Search(query string) []model.CatalogApp {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Catalog()
	}

	var out []model.CatalogApp

	for _, app := range catalog {
		if strings.Contains(strings.ToLower(app.Name), q) ||
			strings.Contains(strings.ToLower(app.PackageID), q) ||
			strings.Contains(strings.ToLower(app.Category), q) {
			out = append(out, app)
		}
	}

	return out
}

// Lookup finds a catalog entry by exact name or package id, ignoring case.
func Lookup(nameOrPackage string) (model.CatalogApp, bool) {
	for _, app := range catalog {
		if strings.EqualFold(app.Name, nameOrPackage) || strings.EqualFold(app.PackageID, nameOrPackage) {
			return app, true
		}
	}

	return model.CatalogApp{}, false
}
