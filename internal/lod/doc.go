// Package lod plans and generates level-of-detail copies of mesh objects.
//
// Plan is pure: it maps a base name and decimation settings to the list of
// derived objects. Generate applies a plan to a scene document, cloning
// each selected mesh once per level and handing the clone to a Decimator.
// The decimation algorithm itself belongs to the host; ModifierDecimator
// records the request as a Decimate modifier on the manifest object.
package lod
