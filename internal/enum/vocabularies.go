package enum

// Category identifies a report category and its detail step
type Category string

const (
	CategorySpatialPlanning Category = "tata-ruang"
	CategoryBuilding        Category = "bangunan"
	CategoryWaterResource   Category = "sumber-daya-air"
	CategoryRoad            Category = "jalan"
	CategoryBridge          Category = "jembatan"
)

// Categories lists the report categories in menu order
var Categories = NewVocabulary("category",
	Entry{"Tata Ruang", string(CategorySpatialPlanning)},
	Entry{"Bangunan Gedung", string(CategoryBuilding)},
	Entry{"Sumber Daya Air", string(CategoryWaterResource)},
	Entry{"Jalan", string(CategoryRoad)},
	Entry{"Jembatan", string(CategoryBridge)},
)

// ParseCategory accepts either the category token or its menu label
func ParseCategory(s string) (Category, bool) {
	for _, e := range Categories.entries {
		if s == e.Token || s == e.Label {
			return Category(e.Token), true
		}
	}
	return "", false
}

// Building status tags
const (
	StatusDamage         = "damage"
	StatusRehabilitation = "rehabilitation"
	StatusOther          = "other"
)

// OtherLabel is the catch-all selection offered by most vocabularies
const OtherLabel = "Lainnya"

var (
	Roles = NewVocabulary("role",
		Entry{"Masyarakat Umum", "MASYARAKAT_UMUM"},
		Entry{"Perangkat Desa", "PERANGKAT_DESA"},
		Entry{"Ketua RT/RW", "KETUA_RT_RW"},
		Entry{"Petugas Dinas", "PETUGAS_DINAS"},
		Entry{OtherLabel, "LAINNYA"},
	)

	Institutions = NewVocabulary("institution",
		Entry{"Masyarakat Umum", "MASYARAKAT_UMUM"},
		Entry{"Pemerintah Desa", "PEMERINTAH_DESA"},
		Entry{"Pemerintah Kecamatan", "PEMERINTAH_KECAMATAN"},
		Entry{"Organisasi Masyarakat", "ORMAS"},
		Entry{"Swasta", "SWASTA"},
	)

	AreaCategories = NewVocabulary("area_category",
		Entry{"Kawasan Permukiman", "KAWASAN_PERMUKIMAN"},
		Entry{"Kawasan Pertanian", "KAWASAN_PERTANIAN"},
		Entry{"Kawasan Hutan", "KAWASAN_HUTAN"},
		Entry{"Kawasan Industri", "KAWASAN_INDUSTRI"},
		Entry{"Sempadan Sungai", "SEMPADAN_SUNGAI"},
		Entry{"Ruang Terbuka Hijau", "RUANG_TERBUKA_HIJAU"},
		Entry{OtherLabel, "LAINNYA"},
	)

	ViolationTypes = NewVocabulary("violation_type",
		Entry{"Bangunan Tanpa Izin", "BANGUNAN_TANPA_IZIN"},
		Entry{"Alih Fungsi Lahan", "ALIH_FUNGSI_LAHAN"},
		Entry{"Pelanggaran Sempadan", "PELANGGARAN_SEMPADAN"},
		Entry{"Pemanfaatan Ruang Tidak Sesuai", "PEMANFAATAN_TIDAK_SESUAI"},
		Entry{OtherLabel, "LAINNYA"},
	)

	ViolationLevels = NewVocabulary("violation_level",
		Entry{"Ringan", "RINGAN"},
		Entry{"Sedang", "SEDANG"},
		Entry{"Berat", "BERAT"},
	)

	EnvironmentalImpacts = NewVocabulary("environmental_impact",
		Entry{"Rendah", "RENDAH"},
		Entry{"Sedang", "SEDANG"},
		Entry{"Tinggi", "TINGGI"},
	)

	Urgencies = NewVocabulary("urgency",
		Entry{"Rendah", "RENDAH"},
		Entry{"Sedang", "SEDANG"},
		Entry{"Tinggi", "TINGGI"},
		Entry{"Darurat", "DARURAT"},
	)

	BuildingTypes = NewVocabulary("building_type",
		Entry{"Sekolah", "SEKOLAH"},
		Entry{"Puskesmas", "PUSKESMAS"},
		Entry{"Kantor Pemerintah", "KANTOR_PEMERINTAH"},
		Entry{"Pasar", "PASAR"},
		Entry{"Tempat Ibadah", "TEMPAT_IBADAH"},
		Entry{OtherLabel, "LAINNYA"},
	)

	BuildingStatuses = NewVocabulary("report_status",
		Entry{"Kerusakan", StatusDamage},
		Entry{"Rehabilitasi", StatusRehabilitation},
		Entry{OtherLabel, StatusOther},
	)

	FundingSources = NewVocabulary("funding_source",
		Entry{"APBD Kabupaten", "APBD_KABUPATEN"},
		Entry{"APBD Provinsi", "APBD_PROVINSI"},
		Entry{"APBN", "APBN"},
		Entry{"Dana Desa", "DANA_DESA"},
		Entry{"Swadaya", "SWADAYA"},
		Entry{OtherLabel, "LAINNYA"},
	)

	FloorCounts = NewVocabulary("floor_count",
		Entry{"1", "1"},
		Entry{"2", "2"},
		Entry{"3", "3"},
		Entry{"4", "4"},
		Entry{OtherLabel, "5"},
	)

	WorkTypes = NewVocabulary("work_type",
		Entry{"Rehabilitasi Ringan", "REHABILITASI_RINGAN"},
		Entry{"Rehabilitasi Sedang", "REHABILITASI_SEDANG"},
		Entry{"Rehabilitasi Berat", "REHABILITASI_BERAT"},
		Entry{"Pembangunan Baru", "PEMBANGUNAN_BARU"},
		Entry{"Pemeliharaan", "PEMELIHARAAN"},
	)

	RehabConditions = NewVocabulary("condition_after_rehab",
		Entry{"Baik", "BAIK"},
		Entry{"Cukup Baik", "CUKUP_BAIK"},
		Entry{"Kurang Baik", "KURANG_BAIK"},
	)

	IrrigationTypes = NewVocabulary("irrigation_type",
		Entry{"Irigasi Teknis", "TEKNIS"},
		Entry{"Irigasi Semi Teknis", "SEMI_TEKNIS"},
		Entry{"Irigasi Sederhana", "SEDERHANA"},
		Entry{"Irigasi Desa", "DESA"},
	)

	WaterDamageTypes = NewVocabulary("water_damage_type",
		Entry{"Saluran Jebol", "SALURAN_JEBOL"},
		Entry{"Sedimentasi", "SEDIMENTASI"},
		Entry{"Pintu Air Rusak", "PINTU_AIR_RUSAK"},
		Entry{"Tanggul Longsor", "TANGGUL_LONGSOR"},
		Entry{"Kebocoran", "KEBOCORAN"},
		Entry{OtherLabel, "LAINNYA"},
	)

	DamageLevels = NewVocabulary("damage_level",
		Entry{"Ringan", "RINGAN"},
		Entry{"Sedang", "SEDANG"},
		Entry{"Berat", "BERAT"},
	)

	PavementTypes = NewVocabulary("pavement_type",
		Entry{"Aspal", "ASPAL"},
		Entry{"Beton", "BETON"},
		Entry{"Paving", "PAVING"},
		Entry{"Kerikil", "KERIKIL"},
		Entry{"Tanah", "TANAH"},
	)

	RoadDamageTypes = NewVocabulary("road_damage_type",
		Entry{"Retak", "RETAK"},
		Entry{"Berlubang", "BERLUBANG"},
		Entry{"Amblas", "AMBLAS"},
		Entry{"Bergelombang", "BERGELOMBANG"},
		Entry{"Longsor", "LONGSOR"},
		Entry{OtherLabel, "LAINNYA"},
	)

	TrafficConditions = NewVocabulary("traffic_condition",
		Entry{"Lancar", "LANCAR"},
		Entry{"Padat", "PADAT"},
		Entry{"Macet", "MACET"},
		Entry{"Terputus", "TERPUTUS"},
	)

	BridgeSections = NewVocabulary("bridge_section",
		Entry{"Pondasi", "PONDASI"},
		Entry{"Bangunan Bawah", "BANGUNAN_BAWAH"},
		Entry{"Bangunan Atas", "BANGUNAN_ATAS"},
		Entry{"Lantai Jembatan", "LANTAI"},
		Entry{"Sandaran", "SANDARAN"},
		Entry{"Oprit", "OPRIT"},
	)

	BridgeStructureTypes = NewVocabulary("bridge_structure_type",
		Entry{"Beton Bertulang", "BETON_BERTULANG"},
		Entry{"Baja", "BAJA"},
		Entry{"Kayu", "KAYU"},
		Entry{"Komposit", "KOMPOSIT"},
	)

	BridgeDamageTypes = NewVocabulary("bridge_damage_type",
		Entry{"Retak", "RETAK"},
		Entry{"Korosi", "KOROSI"},
		Entry{"Gerusan", "GERUSAN"},
		Entry{"Patah", "PATAH"},
		Entry{OtherLabel, "LAINNYA"},
	)
)

// Options returns the select options for every field of a category detail
// step, keyed by the JSON field name.
func Options(c Category) map[string][]string {
	var fields map[string]*Vocabulary
	switch c {
	case CategorySpatialPlanning:
		fields = map[string]*Vocabulary{
			"institution":          Institutions,
			"area_category":        AreaCategories,
			"violation_type":       ViolationTypes,
			"violation_level":      ViolationLevels,
			"environmental_impact": EnvironmentalImpacts,
			"urgency_level":        Urgencies,
		}
	case CategoryBuilding:
		fields = map[string]*Vocabulary{
			"building_type":         BuildingTypes,
			"report_status":         BuildingStatuses,
			"funding_source":        FundingSources,
			"floor_count":           FloorCounts,
			"work_type":             WorkTypes,
			"condition_after_rehab": RehabConditions,
		}
	case CategoryWaterResource:
		fields = map[string]*Vocabulary{
			"irrigation_type":  IrrigationTypes,
			"damage_type":      WaterDamageTypes,
			"damage_level":     DamageLevels,
			"urgency_category": Urgencies,
		}
	case CategoryRoad:
		fields = map[string]*Vocabulary{
			"pavement_type":     PavementTypes,
			"damage_type":       RoadDamageTypes,
			"damage_level":      DamageLevels,
			"traffic_condition": TrafficConditions,
			"urgency_level":     Urgencies,
		}
	case CategoryBridge:
		fields = map[string]*Vocabulary{
			"bridge_section":        BridgeSections,
			"bridge_structure_type": BridgeStructureTypes,
			"bridge_damage_type":    BridgeDamageTypes,
			"bridge_damage_level":   DamageLevels,
			"traffic_condition":     TrafficConditions,
			"urgency_level":         Urgencies,
		}
	default:
		return nil
	}

	out := make(map[string][]string, len(fields))
	for field, vocab := range fields {
		out[field] = vocab.Labels()
	}
	return out
}
