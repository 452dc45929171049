package reading

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"

	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/middleware"
	"github.com/igorgorovoy/fwdays-hackaton-ai-agent-risk-assessment-system/internal/stats"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/reading").
			To(handler.GetReading).
			Doc("Get a tarot reading for a question").
			Metadata(restfulspec.KeyOpenAPITags, []string{"reading"}).
			Reads(ReadingRequest{}).
			Writes(ReadingResponse{}).
			Returns(200, "OK", ReadingResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}).
			Returns(502, "Bad Gateway", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/card/{card_name}").
			To(handler.GetCardInfo).
			Doc("Get knowledge base info for one card").
			Metadata(restfulspec.KeyOpenAPITags, []string{"cards"}).
			Param(ws.PathParameter("card_name", "canonical card name").DataType("string")).
			Writes(CardInfoResponse{}).
			Returns(200, "OK", CardInfoResponse{}).
			Returns(404, "Not Found", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/guardrails/stats").
			To(handler.GetStats).
			Doc("Current guardrail statistics").
			Metadata(restfulspec.KeyOpenAPITags, []string{"stats"}).
			Writes(stats.Snapshot{}).
			Returns(200, "OK", stats.Snapshot{}))

	ws.
		Route(ws.POST("/guardrails/stats/reset").
			To(handler.ResetStats).
			Doc("Reset guardrail statistics").
			Metadata(restfulspec.KeyOpenAPITags, []string{"stats"}).
			Returns(200, "OK", map[string]string{}))

	container.Add(ws)
}
