package carrier

import (
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/errs"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type problemsResponse struct {
	Errors []problemDTO `json:"errors"`
}

type problemDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (r problemsResponse) problems() []errs.Problem {
	if len(r.Errors) == 0 {
		return nil
	}
	problems := make([]errs.Problem, 0, len(r.Errors))
	for _, p := range r.Errors {
		problems = append(problems, errs.Problem{Code: p.Code, Message: p.Message})
	}
	return problems
}

type shipRequest struct {
	LabelResponseOptions string               `json:"labelResponseOptions"`
	AccountNumber        accountNumberDTO     `json:"accountNumber"`
	RequestedShipment    requestedShipmentDTO `json:"requestedShipment"`
}

type accountNumberDTO struct {
	Value string `json:"value"`
}

type requestedShipmentDTO struct {
	Shipper                   partyDTO              `json:"shipper"`
	Recipients                []partyDTO            `json:"recipients"`
	ShipDatestamp             string                `json:"shipDatestamp"`
	ServiceType               string                `json:"serviceType"`
	PackagingType             string                `json:"packagingType"`
	PickupType                string                `json:"pickupType"`
	ShippingChargesPayment    paymentDTO            `json:"shippingChargesPayment"`
	ShipmentSpecialServices   *specialServicesDTO   `json:"shipmentSpecialServices,omitempty"`
	LabelSpecification        labelSpecificationDTO `json:"labelSpecification"`
	TotalWeight               int                   `json:"totalWeight"`
	RequestedPackageLineItems []packageLineItemDTO  `json:"requestedPackageLineItems"`
}

type partyDTO struct {
	Contact contactDTO `json:"contact"`
	Address addressDTO `json:"address"`
}

type contactDTO struct {
	PersonName  string `json:"personName"`
	PhoneNumber string `json:"phoneNumber"`
	CompanyName string `json:"companyName,omitempty"`
}

type addressDTO struct {
	StreetLines         []string `json:"streetLines"`
	City                string   `json:"city"`
	StateOrProvinceCode string   `json:"stateOrProvinceCode"`
	PostalCode          string   `json:"postalCode"`
	CountryCode         string   `json:"countryCode"`
}

type paymentDTO struct {
	PaymentType string `json:"paymentType"`
}

type specialServicesDTO struct {
	SpecialServiceTypes []string `json:"specialServiceTypes"`
}

type labelSpecificationDTO struct {
	ImageType      string `json:"imageType"`
	LabelStockType string `json:"labelStockType"`
}

type weightDTO struct {
	Units string `json:"units"`
	Value int    `json:"value"`
}

type customerReferenceDTO struct {
	CustomerReferenceType string `json:"customerReferenceType"`
	Value                 string `json:"value"`
}

type packageLineItemDTO struct {
	SequenceNumber     int                    `json:"sequenceNumber"`
	Weight             weightDTO              `json:"weight"`
	CustomerReferences []customerReferenceDTO `json:"customerReferences,omitempty"`
}

type shipResponse struct {
	Output *struct {
		TransactionShipments []struct {
			MasterTrackingNumber string `json:"masterTrackingNumber"`
			PieceResponses       []struct {
				TrackingNumber   string `json:"trackingNumber"`
				PackageDocuments []struct {
					ContentType  string `json:"contentType"`
					DocType      string `json:"docType"`
					EncodedLabel string `json:"encodedLabel"`
				} `json:"packageDocuments"`
			} `json:"pieceResponses"`
		} `json:"transactionShipments"`
	} `json:"output"`
}

type trackRequest struct {
	IncludeDetailedScans bool              `json:"includeDetailedScans"`
	TrackingInfo         []trackingInfoDTO `json:"trackingInfo"`
}

type trackingInfoDTO struct {
	TrackingNumberInfo trackingNumberInfoDTO `json:"trackingNumberInfo"`
}

type trackingNumberInfoDTO struct {
	TrackingNumber string `json:"trackingNumber"`
}

type trackResponse struct {
	Output struct {
		CompleteTrackResults []struct {
			TrackingNumber string `json:"trackingNumber"`
			TrackResults   []struct {
				LatestStatusDetail *struct {
					Code        string `json:"code"`
					Description string `json:"description"`
				} `json:"latestStatusDetail"`
			} `json:"trackResults"`
		} `json:"completeTrackResults"`
	} `json:"output"`
}

func toPartyDTO(p shipment.Party) partyDTO {
	return partyDTO{
		Contact: contactDTO{
			PersonName:  p.Contact.PersonName,
			PhoneNumber: p.Contact.PhoneNumber,
			CompanyName: p.Contact.CompanyName,
		},
		Address: addressDTO{
			StreetLines:         append([]string(nil), p.Address.StreetLines...),
			City:                p.Address.City,
			StateOrProvinceCode: p.Address.StateOrProvinceCode,
			PostalCode:          p.Address.PostalCode,
			CountryCode:         p.Address.CountryCode,
		},
	}
}

func toShipRequest(accountNumber string, r shipment.Request) shipRequest {
	recipients := make([]partyDTO, 0, len(r.Recipients))
	for _, p := range r.Recipients {
		recipients = append(recipients, toPartyDTO(p))
	}

	packages := make([]packageLineItemDTO, 0, len(r.Packages))
	for _, p := range r.Packages {
		refs := make([]customerReferenceDTO, 0, len(p.CustomerReferences))
		for _, ref := range p.CustomerReferences {
			refs = append(refs, customerReferenceDTO{
				CustomerReferenceType: shipment.ReferenceCustomer,
				Value:                 ref,
			})
		}
		packages = append(packages, packageLineItemDTO{
			SequenceNumber:     p.SequenceNumber,
			Weight:             weightDTO{Units: shipment.WeightUnitsPounds, Value: p.WeightPounds},
			CustomerReferences: refs,
		})
	}

	var special *specialServicesDTO
	if len(r.SpecialServices) > 0 {
		special = &specialServicesDTO{SpecialServiceTypes: append([]string(nil), r.SpecialServices...)}
	}

	return shipRequest{
		LabelResponseOptions: "LABEL",
		AccountNumber:        accountNumberDTO{Value: accountNumber},
		RequestedShipment: requestedShipmentDTO{
			Shipper:                   toPartyDTO(r.Shipper),
			Recipients:                recipients,
			ShipDatestamp:             r.ShipDate.Format("2006-01-02"),
			ServiceType:               r.ServiceType,
			PackagingType:             r.PackagingType,
			PickupType:                r.PickupType,
			ShippingChargesPayment:    paymentDTO{PaymentType: r.PaymentType},
			ShipmentSpecialServices:   special,
			LabelSpecification:        labelSpecificationDTO{ImageType: r.LabelImageType, LabelStockType: r.LabelStockType},
			TotalWeight:               r.TotalWeight,
			RequestedPackageLineItems: packages,
		},
	}
}
