package handlers

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rollerweb/roller/internal/application/atompub/dto"
	"github.com/rollerweb/roller/internal/shared/constants"
	"github.com/rollerweb/roller/internal/shared/errors"
	"github.com/rollerweb/roller/internal/shared/logger"
	"github.com/rollerweb/roller/internal/shared/utils"
)

const (
	nsAtomPub = "http://www.w3.org/2007/app"
	nsAtom    = "http://www.w3.org/2005/Atom"
)

// AtomPubHandler serves the APP 1.0 service document.
type AtomPubHandler struct {
	serviceDocUC buildServiceDocumentUseCase
	logger       logger.Interface
}

func NewAtomPubHandler(serviceDocUC buildServiceDocumentUseCase, logger logger.Interface) *AtomPubHandler {
	return &AtomPubHandler{
		serviceDocUC: serviceDocUC,
		logger:       logger,
	}
}

// ServiceDocument handles GET /roller-services/app for the authenticated user.
func (h *AtomPubHandler) ServiceDocument(c *gin.Context) {
	userName := c.GetString(constants.ContextKeyUserName)
	if userName == "" {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}

	doc, err := h.serviceDocUC.Execute(c.Request.Context(), dto.ServiceDocumentRequest{UserName: userName})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	body, err := MarshalServiceDocument(doc)
	if err != nil {
		h.logger.Errorw("failed to marshal service document", "user", userName, "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("failed to render service document"))
		return
	}

	c.Data(http.StatusOK, constants.ContentTypeAtomSvc, body)
}

// XML shapes of the APP service document.

type xmlService struct {
	XMLName    xml.Name       `xml:"http://www.w3.org/2007/app service"`
	Workspaces []xmlWorkspace `xml:"workspace"`
}

type xmlWorkspace struct {
	Title       xmlText         `xml:"http://www.w3.org/2005/Atom title"`
	Collections []xmlCollection `xml:"collection"`
}

type xmlText struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlCollection struct {
	Href       string          `xml:"href,attr"`
	Title      xmlText         `xml:"http://www.w3.org/2005/Atom title"`
	Accepts    []string        `xml:"accept"`
	Categories []xmlCategories `xml:"categories"`
}

type xmlCategories struct {
	Fixed      string        `xml:"fixed,attr"`
	Scheme     string        `xml:"scheme,attr,omitempty"`
	Categories []xmlCategory `xml:"http://www.w3.org/2005/Atom category"`
}

type xmlCategory struct {
	Term  string `xml:"term,attr"`
	Label string `xml:"label,attr,omitempty"`
}

// MarshalServiceDocument renders doc as an indented APP 1.0 document with an
// XML declaration.
func MarshalServiceDocument(doc *dto.ServiceDocument) ([]byte, error) {
	out := xmlService{Workspaces: make([]xmlWorkspace, 0, len(doc.Workspaces))}
	for _, ws := range doc.Workspaces {
		xws := xmlWorkspace{Title: xmlText{Type: "text", Value: ws.Title}}
		for _, col := range ws.Collections {
			xcol := xmlCollection{
				Href:    col.Href,
				Title:   xmlText{Type: "text", Value: col.Title},
				Accepts: col.Accepts,
			}
			for _, cats := range col.Categories {
				xcats := xmlCategories{Fixed: "no", Scheme: cats.Scheme}
				if cats.Fixed {
					xcats.Fixed = "yes"
				}
				for _, cat := range cats.Categories {
					xcats.Categories = append(xcats.Categories, xmlCategory{Term: cat.Term, Label: cat.Label})
				}
				xcol.Categories = append(xcol.Categories, xcats)
			}
			xws.Collections = append(xws.Collections, xcol)
		}
		out.Workspaces = append(out.Workspaces, xws)
	}

	body, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
