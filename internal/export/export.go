package export

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/Dan9191/donation-service/internal/models"
)

// BuildLedger renders the donation ledger as an XML document suitable for
// import into accounting tools
func BuildLedger(donations []models.Donation) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("donations")
	root.CreateAttr("count", strconv.Itoa(len(donations)))

	for _, d := range donations {
		e := root.CreateElement("donation")
		e.CreateAttr("id", strconv.FormatInt(d.ID, 10))
		e.CreateElement("donor_id").SetText(strconv.FormatInt(d.DonorID, 10))
		e.CreateElement("cause_id").SetText(strconv.FormatInt(d.CauseID, 10))
		e.CreateElement("amount").SetText(fmt.Sprintf("%.2f", d.Amount))
		e.CreateElement("provider_event_id").SetText(d.ProviderEventID)
		e.CreateElement("created_at").SetText(d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
