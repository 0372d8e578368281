// Package model defines stable boundary types for API layers.
//
// Content identity (canonical value encodings and Merkle roots) is unaffected
// by any projection. These structs are the only types intended for direct
// JSON/YAML serialization by consumers.
package model
