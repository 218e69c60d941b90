package http_test

import (
	"net/http"
	"regexp"
	"strings"

	"multicleaner/internal/core/domain/model/kernel"
)

var echoParam = regexp.MustCompile(`:(\w+)`)

func (suite *APITestSuite) TestRoutesMatchTheDocument() {
	served := 0
	for _, r := range suite.e.Routes() {
		path, ok := strings.CutPrefix(r.Path, "/api/v1")
		if !ok {
			continue
		}
		path = echoParam.ReplaceAllString(path, "{$1}")
		served++

		item := suite.doc.Paths.Value(path)
		if suite.NotNil(item, "%s %s is not documented", r.Method, path) {
			suite.NotNil(item.GetOperation(r.Method), "%s %s is not documented", r.Method, path)
		}
	}

	documented := 0
	for _, item := range suite.doc.Paths.Map() {
		documented += len(item.Operations())
	}
	suite.Equal(documented, served)
}

func (suite *APITestSuite) TestServesOpenAPIDocument() {
	rec := suite.do(http.MethodGet, "/openapi.yaml", kernel.UUID{}, nil)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "openapi: 3.0.3")
}
