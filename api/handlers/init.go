package handlers

import "github.com/funnelhub/domainstack/interfaces"

type APIHandlers struct {
	Domains *DomainHandler
	Funnels *FunnelHandler
}

func InitHandlers(domainService interfaces.DomainService) *APIHandlers {
	return &APIHandlers{
		Domains: NewDomainHandler(domainService),
		Funnels: NewFunnelHandler(domainService),
	}
}
