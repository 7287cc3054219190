// Package modules contains the self-contained application features.
//
// Each subdirectory is a module implementing `module.Module`. Modules are listed in
// `server.AppModules` and booted in order, each under its own route group.
package modules
