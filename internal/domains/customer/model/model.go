package model

import "lodge/shared/model"

// Customers are owned by the contact directory; the engine only reads them
// to resolve booking references and guest names.
const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID                  = "id"
	FieldName                = "name"
	FieldPhoneNumber         = "phone_number"
	FieldEmail               = "email"
	FieldDocumentsFolderLink = "documents_folder_link"
)

type Customer struct {
	ID                  string `db:"id"`
	Name                string `db:"name"`
	PhoneNumber         string `db:"phone_number"`
	Email               string `db:"email"`
	DocumentsFolderLink string `db:"documents_folder_link"`
	model.Metadata
}
