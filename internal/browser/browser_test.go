package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jimezsa/jobharvest/internal/driver"
)

func TestClosedBrowserReportsDisconnect(t *testing.T) {
	b := &Browser{}
	ctx := context.Background()

	assert.False(t, b.Connected())
	assert.ErrorIs(t, b.Click(ctx, "button.jobs-search-pagination__button--next"), driver.ErrDisconnected)
	assert.ErrorIs(t, b.ScrollBy(ctx, 400), driver.ErrDisconnected)
	assert.ErrorIs(t, b.Navigate(ctx, "https://www.linkedin.com/jobs", driver.WaitLoad, 0), driver.ErrDisconnected)
	assert.NoError(t, b.Close())
}
