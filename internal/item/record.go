package item

import "sort"

// VariantRecord is the durable representation of one variant binding.
type VariantRecord struct {
	Label        string `json:"label"`
	VariantType  string `json:"variantType,omitempty"`
	ProjectPath  string `json:"projectPath,omitempty"`
	ErrorStatus  int    `json:"errorStatus,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// ItemRecord is the durable representation of a project item: the unit
// the surrounding project file format serializes. Every field not
// recomputed at load time survives a save/load cycle.
type ItemRecord struct {
	ItemType       string                   `json:"itemType"`
	ProjectPath    string                   `json:"projectPath"`
	Name           string                   `json:"name"`
	Tags           []string                 `json:"tags"`
	Variants       map[string]VariantRecord `json:"variants,omitempty"`
	CreationType   string                   `json:"creationType,omitempty"`
	EditPreference int                      `json:"editPreference,omitempty"`
	ErrorStatus    int                      `json:"errorStatus,omitempty"`
	ErrorMessage   string                   `json:"errorMessage,omitempty"`
	StorageType    string                   `json:"storageType,omitempty"`
}

// Record captures the item's durable state.
func (it *Item) Record() ItemRecord {
	rec := ItemRecord{
		ItemType:       it.itemType.String(),
		ProjectPath:    it.projectPath,
		Name:           it.name,
		Tags:           it.Tags(),
		CreationType:   it.creationType.String(),
		EditPreference: int(it.editPreference),
		ErrorStatus:    int(it.errorStatus),
		ErrorMessage:   it.errorMessage,
	}
	if it.itemType.Storage() == StorageFolder {
		rec.StorageType = "folder"
	} else {
		rec.StorageType = "file"
	}

	if len(it.variants) > 0 {
		rec.Variants = make(map[string]VariantRecord, len(it.variants))
		for label, v := range it.variants {
			rec.Variants[label] = VariantRecord{
				Label:        v.label,
				VariantType:  v.variantType.String(),
				ProjectPath:  v.projectPath,
				ErrorStatus:  int(v.errorStatus),
				ErrorMessage: v.errorMessage,
			}
		}
	}
	return rec
}

// FromRecord reconstructs an item from its durable representation.
func FromRecord(host Host, rec ItemRecord) *Item {
	itemType, ok := ParseItemType(rec.ItemType)
	if !ok {
		itemType = TypeUnknown
	}

	it := New(host, itemType, rec.ProjectPath, rec.Name)
	it.creationType = ParseCreationType(rec.CreationType)
	it.editPreference = EditPreference(rec.EditPreference)
	it.errorStatus = ErrorStatus(rec.ErrorStatus)
	it.errorMessage = rec.ErrorMessage

	tags := append([]string(nil), rec.Tags...)
	sort.Strings(tags)
	it.tags = tags

	for label, vr := range rec.Variants {
		v, err := it.EnsureVariant(label)
		if err != nil {
			continue
		}
		v.variantType = ParseVariantType(vr.VariantType)
		v.projectPath = vr.ProjectPath
		v.errorStatus = ErrorStatus(vr.ErrorStatus)
		v.errorMessage = vr.ErrorMessage
	}
	return it
}
