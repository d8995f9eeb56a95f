package ingest

import (
	"context"
	"strings"

	"github.com/adityarao/billsync-backend/pkg/db/models"
	"github.com/adityarao/billsync-backend/pkg/enums"
)

const countryCallingPrefix = "91"

// NormalizePhone strips everything but digits and drops the country calling
// prefix when the remainder is still a full subscriber number. Returns "" when
// nothing usable is left.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 10 && strings.HasPrefix(digits, countryCallingPrefix) {
		digits = digits[len(countryCallingPrefix):]
	}
	return digits
}

// resolveCustomer finds the profile an order belongs to, or creates one. Phone
// lookup runs first and wins over email. An existing profile absorbs the
// order's contact data: scalar fields overwrite when the order carries a
// value, the email and phone lists only grow, and the primary email never
// changes. Creation without an email fails with ErrMissingIdentityKey.
func resolveCustomer(ctx context.Context, repo Repository, contact ContactFields) (*models.Customer, error) {
	phone := NormalizePhone(contact.Phone)
	email := strings.ToLower(strings.TrimSpace(contact.Email))

	var customer *models.Customer
	var err error
	if phone != "" {
		customer, err = repo.FindCustomerByContact(ctx, enums.ContactKindPhone, phone)
		if err != nil {
			return nil, err
		}
	}
	if customer == nil && email != "" {
		customer, err = repo.FindCustomerByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	if customer == nil {
		if email == "" {
			return nil, ErrMissingIdentityKey
		}
		customer = newCustomer(email, phone, contact)
		if err := repo.CreateCustomer(ctx, customer); err != nil {
			return nil, err
		}
	} else {
		mergeContact(customer, phone, email, contact)
		if err := repo.SaveCustomer(ctx, customer); err != nil {
			return nil, err
		}
	}

	if phone != "" {
		if err := repo.IndexContact(ctx, customer.ID, enums.ContactKindPhone, phone); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if err := repo.IndexContact(ctx, customer.ID, enums.ContactKindEmail, email); err != nil {
			return nil, err
		}
	}
	return customer, nil
}

func newCustomer(email, phone string, contact ContactFields) *models.Customer {
	customer := &models.Customer{
		Email:            email,
		PartyName:        orPlaceholder(contact.PartyName),
		Company:          orPlaceholder(contact.Company),
		TaxID:            orPlaceholder(contact.TaxID),
		Address:          orPlaceholder(contact.Address),
		PostalCode:       orPlaceholder(contact.PostalCode),
		StateName:        orPlaceholder(contact.StateName),
		Country:          orPlaceholder(contact.Country),
		ExternalUserID:   orPlaceholder(contact.ExternalUserID),
		ExternalUsername: orPlaceholder(contact.ExternalUsername),
	}
	customer.Emails = customer.Emails.Add(email)
	customer.Phones = customer.Phones.Add(phone)
	return customer
}

func mergeContact(customer *models.Customer, phone, email string, contact ContactFields) {
	overwrite(&customer.PartyName, contact.PartyName)
	overwrite(&customer.Company, contact.Company)
	overwrite(&customer.TaxID, contact.TaxID)
	overwrite(&customer.Address, contact.Address)
	overwrite(&customer.PostalCode, contact.PostalCode)
	overwrite(&customer.StateName, contact.StateName)
	overwrite(&customer.Country, contact.Country)
	overwrite(&customer.ExternalUserID, contact.ExternalUserID)
	overwrite(&customer.ExternalUsername, contact.ExternalUsername)
	customer.Emails = customer.Emails.Add(email)
	customer.Phones = customer.Phones.Add(phone)
}

// overwrite applies latest-write-wins semantics for scalar profile fields.
func overwrite(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func orPlaceholder(value string) string {
	if value == "" {
		return models.PlaceholderValue
	}
	return value
}
