package constants

// Pesan response report & template
const (
	MsgTemplateCreated = "Template report berhasil dibuat"
	MsgTemplateList    = "Daftar template report"
	MsgTemplateDetail  = "Detail template report"
	MsgTemplateUpdated = "Template report berhasil diperbarui"
	MsgTemplateDeleted = "Template report berhasil dihapus"

	MsgReportGenerated = "Report berhasil dibuat"
	MsgReportList      = "Daftar report"
	MsgReportDetail    = "Detail report"
	MsgReportUpdated   = "Metadata report berhasil diperbarui"
	MsgReportDeleted   = "Report berhasil dihapus"

	MsgInvalidBody = "Body request tidak valid"
)

// Pagination default untuk list report.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)
