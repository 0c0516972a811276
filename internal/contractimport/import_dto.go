package contractimport

// ImportByReferenceRequest imports a document already uploaded to object storage.
type ImportByReferenceRequest struct {
	FileReference           string `json:"file_reference" binding:"required"`
	FileName                string `json:"file_name" binding:"required"`
	RequireExistingCustomer bool   `json:"require_existing_customer"`
}
