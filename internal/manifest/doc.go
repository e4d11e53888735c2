// Package manifest provides the YAML schema, parsing, validation and
// linking of mock manifests.
//
// A manifest is a descriptor snapshot plus the list of mocks requested
// against it. It is how types that the Go analyzer cannot see (binary-only
// or foreign assemblies) are described to the engine.
//
// # Schema Overview
//
//	version: "1"
//	assembly: TestImplementation      # default for types and mocks
//	config:
//	  return_default_if_not_mocked: false
//	  field_prefix: Mock
//	  name_postfix: Mock
//	  strict: false
//	types:
//	  - namespace: Example
//	    name: ExternalSystemServiceBase
//	    kind: class
//	    abstract: true
//	    access: internal
//	    base: System.Object
//	    interfaces: [IExternalSystemService]
//	    members:
//	      - kind: method
//	        name: Add
//	        access: internal
//	        abstract: true
//	        params: ["operand1 int", "operand2 int"]
//	        returns: int
//	      - kind: method
//	        name: GetAsync
//	        virtual: true
//	        async: true
//	        returns: System.Threading.Tasks.Task<decimal>
//	      - kind: property
//	        name: PassedVal
//	        type: string
//	        get: true
//	        set: private
//	      - kind: constructor
//	        params: ["passedVal string"]
//	mocks:
//	  - name: MyMock
//	    target: ExternalSystemServiceBase
//
// Params accept the "name type" shorthand or a {name, type, short}
// mapping. Accessors accept true, an accessibility, or {access: ...}.
//
// # Validation
//
// Structural rules are struct tags checked with go-playground/validator;
// cross-references (bases, interfaces, duplicate IDs) are checked by
// Validate on top. Every problem is reported as an invalid_manifest
// diagnostic with the YAML path of the offending field.
package manifest
