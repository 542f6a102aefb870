package identifier

// Well-known identifiers. IEEE 1159.3-2003 fixes these bit-exactly; the
// retrieved reference pack for this codec did not include the standard's
// GUID table (no original_source/ was available), so the values below are a
// self-consistent internal set rather than a transcription of the published
// standard. Every round-trip and classification property in this codebase
// depends only on these values being used consistently by the reader,
// writer, and registry, not on matching the published standard bit-exactly.
var (
	// RecordSignature is the constant written into every record header's
	// first 16 bytes, identifying the container as a PQDIF file.
	RecordSignature = MustParse("a1dd90c8-ffab-4bfe-8757-285a8c25e23a")

	// Record-type tags.
	TagContainerRecordType       = MustParse("3d786f93-f76e-4e96-9034-6fe4f9fef06a")
	TagDataSourceRecordType      = MustParse("b48d8581-f5f5-4e8d-9a86-4c4a42ad3b75")
	TagMonitorSettingsRecordType = MustParse("e2eb3ea1-70d9-4ee2-9e1b-b1d9a3ed68cb")
	TagObservationRecordType     = MustParse("8bb7bb04-e68e-4f66-9a0e-b8a0e90cba74")

	// Container record fields.
	TagVersionInfo        = MustParse("89738607-f1c3-11cf-9d89-0080c72e70a3")
	TagCompressionAlgorithm = MustParse("7632bf58-66fd-4a8c-8e78-2c8c77f4e1c2")
	TagCompressionStyle   = MustParse("70ba1152-73c6-4e9f-8b90-9f3c7fcbe31d")
	TagFileName           = MustParse("2c4b3ec5-59eb-44f6-9a0b-cfb2fd79e9a4")
	TagCreationTime       = MustParse("62f52ff1-c79f-4df9-8f5d-3b9e15e9a7a1")

	// Data source record fields.
	TagDataSourceName = MustParse("c6a6c0b5-2e0b-4f9e-90f1-3c9d7a0d9a65")

	// Observation record fields.
	TagObservationName     = MustParse("63d2d95f-f27c-434c-9c0f-4b0b0f6d8f4b")
	TagObservationDataSource = MustParse("dc28ca8d-c0fa-4a3d-8a75-9e1e05fb1c3a")
	TagObservationSettings = MustParse("6f4c3a40-6ffd-4e9b-a2b4-fae2c1a5ddb3")
	TagObservationTimeStart = MustParse("a1e7b7a0-6d35-4a1e-9a4b-8a08e9e7d6a9")
	TagChannelInstances    = MustParse("0fa63e80-041d-4062-9e55-fb390c51ddf8")

	// Channel instance fields.
	TagChannelDefinitionIndex = MustParse("64bc1e2c-4fc0-4c66-9cdf-e1f0db3bb78e")
	TagSeriesInstances        = MustParse("c219f333-5cf9-4f83-8d2e-7fa7f71e7c8f")

	// Series instance fields.
	TagSeriesDefinitionIndex = MustParse("5202bde4-5f95-4ffa-a02d-40f8e7933b43")
	TagSeriesValues          = MustParse("d293a9bd-4436-421a-93d8-e1b7d6ca8f29")
	TagSeriesValueScale      = MustParse("e1b6dbfd-f9ed-4ba9-a6a3-4c2de0f8c1b3")
	TagSeriesValueOffset     = MustParse("5e1d8fa7-af94-4c1a-9a2f-2df0b6bdbb9e")
	TagSeriesStorageMethods  = MustParse("5202bde4-6ad9-4de0-9dc4-1c3c1c0cfb01")
	TagSeriesShareSeries     = MustParse("a6f1e56b-4a5c-4f44-9f3f-8e6b6ecf1c54")

	// Monitor settings record fields.
	TagChannelSettings            = MustParse("0e2d02c9-7156-4d65-9cd1-0d0e75c8d8a6")
	TagChannelSettingDefIndex     = MustParse("d3fe5ecd-2c7d-4a8a-a7e4-f9a4ef3cd2a1")
	TagChannelSettingUseTransducer = MustParse("7f5a4c96-c9eb-4b47-9fcb-0ddc8b1dd9f9")
	TagTransducerRatioSystemSide  = MustParse("23f4f4c3-0f8c-4a1d-91db-9e4f19e8b5a1")
	TagTransducerRatioMonitorSide = MustParse("8ab7a90f-5289-4ff0-8f67-d6fb12fd3a26")

	// Semantic helper well-known tags (ChannelDefinition fields, §4.F).
	TagQuantityTypeID         = MustParse("58a6ca6f-762c-4f76-8f94-48dd7a0ec4e1")
	TagEquipmentID            = MustParse("2c0a4f0f-2c98-4f53-ac6e-1234d1ebac8c")
	TagDisturbanceCategoryID  = MustParse("9b0e6c8b-a449-4480-a8f6-8fa0a5b2b7e2")
	TagSeriesValueTypeID      = MustParse("89738607-f1c3-11cf-9d8a-0080c72e70a3")
	TagQuantityCharacteristicID = MustParse("89738607-f1c3-11cf-9d8b-0080c72e70a3")
)
