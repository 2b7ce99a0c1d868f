package browser

import (
	"context"

	"github.com/jimezsa/jobharvest/internal/driver"
)

const bannerScript = `lines => {
  document.querySelector('div[data-banner="jobharvest"]')?.remove();
  const div = document.createElement('div');
  div.setAttribute('data-banner', 'jobharvest');
  Object.assign(div.style, {
    position: 'fixed', top: '0', left: '0', right: '0', zIndex: '9999',
    backgroundColor: '#4CAF50', color: 'white', padding: '10px',
    textAlign: 'center', fontSize: '14px', fontFamily: 'Arial, sans-serif',
  });
  for (const line of lines) {
    const row = document.createElement('div');
    row.textContent = line;
    div.appendChild(row);
  }
  document.body.appendChild(div);
}`

var _ driver.Bannerer = (*Browser)(nil)

// ShowBanner pins operator instructions to the top of the page.
func (b *Browser) ShowBanner(ctx context.Context, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.Evaluate(bannerScript, lines)
	return err
}
