package addon

// Report kinds accepted by the host's operator report call.
const (
	ReportInfo    = "INFO"
	ReportWarning = "WARNING"
	ReportError   = "ERROR"
)

// Object interaction modes.
const (
	ModeEdit         = "EDIT"
	ModeEditMesh     = "EDIT_MESH"
	ModeEditCurve    = "EDIT_CURVE"
	ModeEditSurface  = "EDIT_SURFACE"
	ModeEditText     = "EDIT_TEXT"
	ModeEditMetaball = "EDIT_METABALL"
	ModeEditArmature = "EDIT_ARMATURE"
	ModeEditLattice  = "EDIT_LATTICE"
	ModeObject       = "OBJECT"
	ModeSculpt       = "SCULPT"
	ModePaintVertex  = "PAINT_VERTEX"
	ModePaintWeight  = "PAINT_WEIGHT"
	ModePaintTexture = "PAINT_TEXTURE"
)

// Object types.
const (
	ObjectMesh     = "MESH"
	ObjectCurve    = "CURVE"
	ObjectSurface  = "SURFACE"
	ObjectMeta     = "META"
	ObjectFont     = "FONT"
	ObjectArmature = "ARMATURE"
	ObjectLattice  = "LATTICE"
	ObjectEmpty    = "EMPTY"
	ObjectCamera   = "CAMERA"
	ObjectLight    = "LIGHT"
	ObjectSpeaker  = "SPEAKER"
)

// Operator results.
const (
	OpFinished     = "FINISHED"
	OpCancelled    = "CANCELLED"
	OpRunningModal = "RUNNING_MODAL"
	OpPassThrough  = "PASS_THROUGH"
)

// ConstantTables groups the constants by the name add-on code sees them under.
func ConstantTables() map[string]map[string]string {
	return map[string]map[string]string{
		"report": {
			"INFO": ReportInfo, "WARNING": ReportWarning, "ERROR": ReportError,
		},
		"mode": {
			"EDIT": ModeEdit, "EDIT_MESH": ModeEditMesh, "EDIT_CURVE": ModeEditCurve,
			"EDIT_SURFACE": ModeEditSurface, "EDIT_TEXT": ModeEditText,
			"EDIT_METABALL": ModeEditMetaball, "EDIT_ARMATURE": ModeEditArmature,
			"EDIT_LATTICE": ModeEditLattice, "OBJECT": ModeObject, "SCULPT": ModeSculpt,
			"PAINT_VERTEX": ModePaintVertex, "PAINT_WEIGHT": ModePaintWeight,
			"PAINT_TEXTURE": ModePaintTexture,
		},
		"object_type": {
			"MESH": ObjectMesh, "CURVE": ObjectCurve, "SURFACE": ObjectSurface,
			"META": ObjectMeta, "FONT": ObjectFont, "ARMATURE": ObjectArmature,
			"LATTICE": ObjectLattice, "EMPTY": ObjectEmpty, "CAMERA": ObjectCamera,
			"LIGHT": ObjectLight, "SPEAKER": ObjectSpeaker,
		},
		"op": {
			"FINISHED": OpFinished, "CANCELLED": OpCancelled,
			"RUNNING_MODAL": OpRunningModal, "PASS_THROUGH": OpPassThrough,
		},
	}
}
