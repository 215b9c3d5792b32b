// Package scene models the host 3D scene that meshkit inspects and edits.
//
// The validator only ever sees the narrow read-only query interfaces
// [Candidate], [Material], [Node] and [Image]. [Document] is the concrete
// adapter: a scene manifest exported by the host tool and stored as YAML,
// JSON or TOML. A minimal manifest looks like:
//
//	source: props.blend
//	active: Crate
//	objects:
//	  - name: Crate
//	    type: mesh
//	    selected: true
//	    mesh: Crate
//	    materials: [Wood]
//	materials:
//	  - name: Wood
//	    use_nodes: true
//	    nodes:
//	      - type: TEX_IMAGE
//	        image: WoodDiffuse
//	images:
//	  - name: WoodDiffuse
//	    filepath: //textures/wood.png
//
// Image file paths follow the host convention: "//" is relative to the
// project directory, which defaults to the directory holding the manifest.
package scene
