package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-dashboard-api/internal/scheduler"
	"github.com/vfg2006/campaign-dashboard-api/internal/usecases/exchanging"
	"github.com/vfg2006/campaign-dashboard-api/pkg/apiErrors"
)

// RolloverJobType define o tipo de operação manual de rollover
const (
	RolloverJobTypeSnapshot    = "snapshot"
	RolloverJobTypeReset       = "reset"
	RolloverJobTypeRateRefresh = "rate-refresh"
)

// RolloverServices contém os serviços necessários para as operações
// manuais e o painel de status
type RolloverServices struct {
	RolloverService *scheduler.DailyRolloverService
	RateService     exchanging.RateService
}

// RunRolloverJob executa manualmente uma operação de rollover
func RunRolloverJob(services RolloverServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunRolloverJob")

		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if jobType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de operação não especificado", nil)
			return
		}

		response := map[string]any{
			"message": "Operação executada com sucesso",
			"type":    jobType,
		}

		switch jobType {
		case RolloverJobTypeSnapshot:
			// Snapshot manual: arquiva o dia corrente sem limpar a coleção
			if services.RolloverService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de rollover não disponível", nil)
				return
			}

			wrote, err := services.RolloverService.ManualSnapshot()
			if err != nil {
				logrus.Error("Error running manual snapshot:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar snapshot manual", nil)
				return
			}
			response["snapshot_written"] = wrote

		case RolloverJobTypeReset:
			// Reset manual: arquiva e limpa a coleção de trabalho
			if services.RolloverService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de rollover não disponível", nil)
				return
			}

			if err := services.RolloverService.ManualReset(); err != nil {
				logrus.Error("Error running manual reset:", err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao executar reset manual", nil)
				return
			}

		case RolloverJobTypeRateRefresh:
			// Atualização forçada da cotação, independente do TTL
			if services.RateService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de cotação não disponível", nil)
				return
			}
			services.RateService.Refresh()

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de operação inválido. Valores aceitos: snapshot, reset, rate-refresh", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

// GetRolloverStatus retorna o status do agendador de rollover e do
// cache de cotação
func GetRolloverStatus(services RolloverServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetRolloverStatus")

		status := map[string]any{
			"rollover":      services.RolloverService.GetStatus(),
			"exchange_rate": services.RateService.GetStatus(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	})
}
