package mapping

import (
	"github.com/SscSPs/property_management_app/internal/core/domain"
	"github.com/SscSPs/property_management_app/internal/models"
)

// ToModelBuilding converts a domain Building to a model Building
func ToModelBuilding(d domain.Building) models.Building {
	return models.Building{
		BuildingID:    d.BuildingID,
		Name:          d.Name,
		Address:       d.Address,
		Capacity:      d.Capacity,
		OccupiedCount: d.OccupiedCount,
		VacantCount:   d.VacantCount,
		HouseCount:    d.HouseCount,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBuilding converts a model Building to a domain Building
func ToDomainBuilding(m models.Building) domain.Building {
	return domain.Building{
		BuildingID:    m.BuildingID,
		Name:          m.Name,
		Address:       m.Address,
		Capacity:      m.Capacity,
		OccupiedCount: m.OccupiedCount,
		VacantCount:   m.VacantCount,
		HouseCount:    m.HouseCount,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelHouse converts a domain House to a model House
func ToModelHouse(d domain.House) models.House {
	return models.House{
		HouseID:     d.HouseID,
		BuildingID:  d.BuildingID,
		UnitNumber:  d.UnitNumber,
		SizeLabel:   d.SizeLabel,
		RentAmount:  d.RentAmount,
		Occupied:    d.Occupied,
		TenantCount: d.TenantCount,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainHouse converts a model House to a domain House
func ToDomainHouse(m models.House) domain.House {
	return domain.House{
		HouseID:     m.HouseID,
		BuildingID:  m.BuildingID,
		UnitNumber:  m.UnitNumber,
		SizeLabel:   m.SizeLabel,
		RentAmount:  m.RentAmount,
		Occupied:    m.Occupied,
		TenantCount: m.TenantCount,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTenant converts a domain Tenant to a model Tenant
func ToModelTenant(d domain.Tenant) models.Tenant {
	return models.Tenant{
		TenantID:    d.TenantID,
		Name:        d.Name,
		Phone:       d.Phone,
		Email:       d.Email,
		IDNumber:    d.IDNumber,
		HouseID:     d.HouseID,
		IsActive:    d.IsActive,
		Balance:     d.Balance,
		RentDueDay:  d.RentDueDay,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTenant converts a model Tenant to a domain Tenant
func ToDomainTenant(m models.Tenant) domain.Tenant {
	return domain.Tenant{
		TenantID:    m.TenantID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		IDNumber:    m.IDNumber,
		HouseID:     m.HouseID,
		IsActive:    m.IsActive,
		Balance:     m.Balance,
		RentDueDay:  m.RentDueDay,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
