package services

import (
	"time"

	"catering-service/internal/domain"
)

const (
	TestClientID    = uint64(10)
	TestDriverID    = uint64(20)
	TestAdminID     = uint64(30)
	TestOrderID     = uint64(1)
	TestDispatchID  = uint64(100)
	TestOrderNumber = "CATER-abc123"
	TestOrderTotal  = int64(50000)
	TestTip         = int64(5000)
)

func validAddressInput() AddressInput {
	return AddressInput{
		Street1: "1 Market St",
		City:    "San Francisco",
		State:   "CA",
		Zip:     "94105",
	}
}

func validCateringDraft() CateringDraft {
	return CateringDraft{
		OrderDraft: OrderDraft{
			UserID:          TestClientID,
			OrderNumber:     TestOrderNumber,
			Pickup:          validAddressInput(),
			Delivery:        validAddressInput(),
			PickupDateTime:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
			ArrivalDateTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			OrderTotal:      TestOrderTotal,
			Tip:             TestTip,
		},
		Headcount: 50,
	}
}

func validOnDemandDraft() OnDemandDraft {
	return OnDemandDraft{
		OrderDraft: OrderDraft{
			UserID:          TestClientID,
			Pickup:          validAddressInput(),
			Delivery:        validAddressInput(),
			PickupDateTime:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
			ArrivalDateTime: time.Date(2024, 6, 1, 9, 45, 0, 0, time.UTC),
			OrderTotal:      12000,
		},
		ItemDelivered: "documents",
		VehicleType:   "CAR",
		Weight:        2.5,
	}
}

func cateringFixture(id uint64, status domain.OrderStatus) *domain.CateringOrder {
	return &domain.CateringOrder{
		OrderBase: domain.OrderBase{
			ID:              id,
			OrderNumber:     TestOrderNumber,
			UserID:          TestClientID,
			PickupDateTime:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
			ArrivalDateTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			OrderTotal:      TestOrderTotal,
			Tip:             TestTip,
			Status:          status,
		},
		Headcount: 50,
	}
}

func placedCatering(id uint64, status domain.OrderStatus) *domain.PlacedOrder {
	return &domain.PlacedOrder{
		Variant:  domain.VariantCatering,
		Catering: cateringFixture(id, status),
	}
}

func userFixture(id uint64, accountType domain.AccountType) *domain.User {
	return &domain.User{ID: id, AccountType: accountType}
}

func dispatchFixture(id uint64, ref domain.OrderRef, driverID uint64, status domain.DriverStatus) *domain.Dispatch {
	d := &domain.Dispatch{
		ID:                id,
		DriverID:          driverID,
		DispatchingUserID: TestAdminID,
		DriverStatus:      status,
	}
	d.SetOrderRef(ref)
	return d
}

func attachmentFixture(id, owner uint64, entityType domain.EntityType, entityID string) domain.FileAttachment {
	return domain.FileAttachment{
		ID:          id,
		OwnerUserID: owner,
		FileName:    "menu.pdf",
		FileType:    "application/pdf",
		FileSize:    2048,
		StorageKey:  "key-" + entityID,
		StorageURL:  "https://blobs.example/key-" + entityID,
		EntityType:  entityType,
		EntityID:    entityID,
		Category:    "menu",
	}
}
