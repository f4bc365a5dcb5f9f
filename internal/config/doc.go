// Package config defines the format-agnostic manifest model for a session,
// along with the interfaces (Loader, Converter) used to load it and to bind
// plugin settings onto Go structs.
//
// A manifest says which plugins from the catalog to enable, in which order,
// and how the app loop runs. The session package is the only consumer of the
// model; concrete formats such as HCL live in separate packages.
package config
