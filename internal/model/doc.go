// Package model defines the data structures used throughout Vanaclone.
//
// These are plain values shared by the storage layer, the wizard, the
// terminal UI and the local web API. JSON tags match the layout the browser
// build of the app used in its local storage, so an exported profile slot
// loads unchanged.
//
// # Profile
//
// The [Profile] struct is one saved clone:
//
//	type Profile struct {
//	    ID             string          // UUID, immutable
//	    Name           string          // display label
//	    AppName        string          // source application
//	    ThemeColor     ThemeColor      // palette entry
//	    CreatedAt      Timestamp       // Unix millis on the wire
//	    PrivacyConfig  PrivacyConfig   // five decorative toggles
//	    DeviceIdentity *DeviceIdentity // nil unless generated
//	}
//
// # GlobalSettings
//
// [GlobalSettings] holds default toggles. They are persisted but not applied
// to new profiles.
package model
