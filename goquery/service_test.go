package goquery_test

import (
	"testing"

	"github.com/lithoslabs/evidence"
	"github.com/lithoslabs/evidence/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filingHTML = `<html><body>
<div id="fin-1" style="margin:0">
	<span style="font-weight:700">Consolidated Financial Statements</span>
	<p>The audited financial statements present the results for the year.</p>
	<table><tr><td>Revenue</td><td>$1,200</td></tr><tr><td>Net income</td><td>$300</td></tr></table>
	<table><tr><td>Assets</td><td>$5,000</td></tr></table>
</div>
<div id="mda-1">
	<span style="font-weight:700">Management's Discussion and Analysis</span>
	<p>Management's discussion of operations and outlook.</p>
</div>
</body></html>`

func TestService_Sections(t *testing.T) {
	t.Parallel()

	svc := goquery.NewService()
	sections, err := svc.Sections(filingHTML)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	fin := sections[0]
	assert.Equal(t, "fin-1", fin.ID)
	assert.Equal(t, "financial_statements", fin.Kind)
	assert.Equal(t, "Consolidated Financial Statements", fin.Title)
	assert.Contains(t, fin.Text, "audited financial statements")

	require.Len(t, fin.Tables, 2)
	assert.Equal(t, "evloc-table-0", fin.Tables[0].ElementID)
	assert.Equal(t, "Table 1", fin.Tables[0].Label)
	require.Len(t, fin.Tables[0].Rows, 2)
	assert.Equal(t, "Revenue | $1,200", fin.Tables[0].Rows[0])
	assert.Equal(t, "evloc-table-1", fin.Tables[1].ElementID)
	assert.Equal(t, "Table 2", fin.Tables[1].Label)

	mda := sections[1]
	assert.Equal(t, "mda-1", mda.ID)
	assert.Equal(t, "management_discussion", mda.Kind)
	assert.Empty(t, mda.Tables)
}

func TestService_Sections_TableNumberingSpansSections(t *testing.T) {
	t.Parallel()

	// Tables in later sections continue the document-wide count instead of
	// restarting, so a table hint like "Table 2" is unambiguous.
	html := `<html><body>
	<div id="fin-1"><span>Financial Statements</span>
		<table><tr><td>Revenue</td></tr></table>
	</div>
	<div id="mda-1"><span>Management's Discussion</span>
		<table><tr><td>Outlook</td></tr></table>
	</div>
	</body></html>`

	sections, err := goquery.NewService().Sections(html)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	require.Len(t, sections[0].Tables, 1)
	require.Len(t, sections[1].Tables, 1)

	first, second := sections[0].Tables[0], sections[1].Tables[0]
	assert.Equal(t, "Table 1", first.Label)
	assert.Equal(t, "evloc-table-0", first.ElementID)
	assert.Equal(t, "Table 2", second.Label)
	assert.Equal(t, "evloc-table-1", second.ElementID)
}

func TestService_Sections_KeepsNativeTableID(t *testing.T) {
	t.Parallel()

	html := `<div id="fin-1"><span>Financial Statements</span>
	<table id="t-revenue"><tr><td>Revenue</td></tr></table>
	<table><tr><td>Assets</td></tr></table>
	</div>`

	sections, err := goquery.NewService().Sections(html)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Len(t, sections[0].Tables, 2)

	assert.Equal(t, "t-revenue", sections[0].Tables[0].ElementID)
	assert.Equal(t, "Table 1", sections[0].Tables[0].Label)
	assert.Equal(t, "evloc-table-1", sections[0].Tables[1].ElementID)
	assert.Equal(t, "Table 2", sections[0].Tables[1].Label)
}

func TestService_Sections_DeduplicatesIDs(t *testing.T) {
	t.Parallel()

	// One div matching both the balance sheet and financial statements
	// patterns must yield a single section.
	html := `<div id="bs-1"><span>Balance Sheets and Financial Statements</span></div>`

	sections, err := goquery.NewService().Sections(html)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "bs-1", sections[0].ID)
}

func TestService_Sections_NoMatches(t *testing.T) {
	t.Parallel()

	sections, err := goquery.NewService().Sections("<html><body><p>nothing here</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestService_CompanyInfo(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<span id="name-1"><ix:nonnumeric name="dei:EntityRegistrantName">Northern Copper Corp.</ix:nonnumeric></span>
	<span id="loc-1">
		<ix:nonnumeric name="dei:EntityAddressCityOrTown">Toronto</ix:nonnumeric>,
		<ix:nonnumeric name="dei:EntityAddressStateOrProvince">Ontario</ix:nonnumeric>
	</span>
	</body></html>`

	info, err := goquery.NewService().CompanyInfo(html)
	require.NoError(t, err)

	require.NotNil(t, info.CompanyName)
	assert.Equal(t, "Northern Copper Corp.", info.CompanyName.Text)
	assert.Equal(t, "name-1", info.CompanyName.ElementID)

	require.NotNil(t, info.Location)
	assert.Equal(t, "Toronto, Ontario", info.Location.Text)
	assert.Equal(t, "loc-1", info.Location.ElementID)
}

func TestService_CompanyInfo_AllLocationParts(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<span id="addr-1">
		<ix:nonnumeric name="dei:EntityAddressCityOrTown">Vancouver</ix:nonnumeric>,
		<ix:nonnumeric name="dei:EntityAddressStateOrProvince">British Columbia</ix:nonnumeric>
	</span>
	<span id="inc-1"><ix:nonnumeric name="dei:EntityIncorporationStateCountryCode">Canada</ix:nonnumeric></span>
	</body></html>`

	info, err := goquery.NewService().CompanyInfo(html)
	require.NoError(t, err)

	require.NotNil(t, info.Location)
	assert.Equal(t, "Vancouver, British Columbia, Canada", info.Location.Text)
	assert.Equal(t, "addr-1", info.Location.ElementID)
}

func TestService_CompanyInfo_IncorporationFallback(t *testing.T) {
	t.Parallel()

	html := `<div id="cover"><span name="dei:EntityIncorporationStateCountryCode">Delaware</span></div>`

	info, err := goquery.NewService().CompanyInfo(html)
	require.NoError(t, err)

	assert.Nil(t, info.CompanyName)
	require.NotNil(t, info.Location)
	assert.Equal(t, "Delaware", info.Location.Text)
	assert.Equal(t, "cover", info.Location.ElementID)
}

func TestService_CompanyInfo_Missing(t *testing.T) {
	t.Parallel()

	info, err := goquery.NewService().CompanyInfo("<html><body></body></html>")
	require.NoError(t, err)
	assert.Equal(t, &evidence.CompanyInfo{}, info)
}
