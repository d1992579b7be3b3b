package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/archiving"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/campaigning"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/exchanging"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Campaigns(service campaigning.CampaignService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(service),
		},
		{
			Path:    "/v1/campaigns",
			Method:  http.MethodPut,
			Handler: ReplaceCampaigns(service),
		},
	}
}

func Snapshots(service archiving.SnapshotService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/snapshots",
			Method:  http.MethodGet,
			Handler: ListSnapshotDates(service),
		},
		{
			Path:    "/v1/snapshots/:date",
			Method:  http.MethodGet,
			Handler: GetSnapshotByDate(service),
		},
	}
}

func ExchangeRate(service exchanging.RateService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/exchange-rate",
			Method:  http.MethodGet,
			Handler: GetExchangeRate(service),
		},
		{
			Path:    "/v1/convert",
			Method:  http.MethodPost,
			Handler: ConvertAmount(service),
		},
	}
}

func Rollover(services RolloverServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/rollover/:type/run",
			Method:  http.MethodPost,
			Handler: RunRolloverJob(services),
		},
		{
			Path:    "/v1/rollover/status",
			Method:  http.MethodGet,
			Handler: GetRolloverStatus(services),
		},
	}
}
