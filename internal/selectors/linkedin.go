package selectors

// Default returns the LinkedIn selector tables.
func Default() Set {
	return Set{
		ListMarkers: []string{
			".job-card-container",
			".jobs-search-results-list",
			".jobs-search__results-list",
			".jobs-search-results__list-item",
			".scaffold-layout__list-container",
			".jobs-search-results-list__wrapper",
			".jobs-search-results__container",
		},
		Cards: []string{
			".job-card-container",
			".jobs-search-results__list-item",
			".jobs-search-two-pane__job-card-container",
			"[data-job-id]",
			".job-card-list",
			".jobs-search__results-list > li",
			".base-card",
		},
		Title: []string{
			"h3.base-search-card__title",
			".job-card-list__title",
			".job-card-container__link",
			".jobs-search-results__list-item-title",
			`a[data-control-name="job_card_title"]`,
			".job-card-container__link span",
			".jobs-unified-top-card__job-title",
			".job-details-jobs-unified-top-card__job-title",
		},
		Company: []string{
			"h4.base-search-card__subtitle",
			"h4.job-card-container__company-name",
			".job-card-container__company-name",
			".job-card-container__primary-description",
			".base-search-card__subtitle",
			".job-card-container__company-link",
			".artdeco-entity-lockup__subtitle",
			".jobs-unified-top-card__company-name",
			".job-details-jobs-unified-top-card__company-name",
			`a[data-control-name="company_link"]`,
		},
		Location: []string{
			".job-card-container__metadata-item",
			".job-search-card__location",
			".artdeco-entity-lockup__caption",
			".job-card-container__metadata-wrapper",
			".jobs-unified-top-card__bullet",
			".jobs-unified-top-card__workplace-type",
			".jobs-unified-top-card__subtitle-primary-grouping",
			".job-card-container__metadata-wrapper span:not([class])",
			".job-details-jobs-unified-top-card__bullet",
			".job-card-container__metadata-wrapper div:not([class])",
		},
		PostedDate: []string{
			"time.job-search-card__listdate",
			".job-card-container__listed-time",
			".posted-time-ago__text",
			".job-search-card__listdate--new",
			".jobs-unified-top-card__posted-date",
			".jobs-details-job-card__time-badge",
			"time.artdeco-entity-lockup__caption",
			".job-card-container__metadata-wrapper time",
			"[data-test-job-card-posted-date]",
		},
		Salary: []string{
			".job-search-card__salary-info",
			".job-card-container__salary-info",
			".salary-information",
			".jobs-unified-top-card__salary",
			".jobs-unified-top-card__metadata-salary",
			".compensation-information",
			".jobs-unified-top-card__metadata-compensation",
			"[data-test-job-card-salary]",
			".job-details-jobs-unified-top-card__salary-info",
			".job-card-list__salary",
			`.jobs-unified-top-card__primary-description span[class*="salary"]`,
			`.job-details-jobs-unified-top-card__primary-description span[class*="salary"]`,
			`span[class*="salary"]`,
			`div[class*="salary"]`,
		},
		JobLink: []string{
			"a.job-card-container__link",
			"a.base-card__full-link",
			"a.job-card-list__title",
			`a[data-control-name="job_card_title"]`,
			".job-card-list__title",
			"a.job-card-container__company-name",
		},
		Description: []string{
			".jobs-description__content",
			".jobs-box__html-content",
			".jobs-description",
			".jobs-unified-description__content",
			".jobs-search__job-details--container",
			".jobs-description-content__text",
			"article.jobs-description__container",
			".show-more-less-html__markup",
			".description__text",
		},
		DetailMarkers: []string{
			".jobs-unified-top-card",
			".jobs-details",
			".job-view-layout",
			".jobs-search__job-details",
			".jobs-details__main-content",
		},
		DescriptionFallback: []string{
			".jobs-search__right-rail",
		},
		NextPage: []string{
			`button[aria-label="Next"]`,
			`button[aria-label="View next page"]`,
		},
		Login: Login{
			NavBar:      ".global-nav",
			ProfileIcon: ".global-nav__me-menu",
			LoginForm:   ".login__form",
			JoinNow:     ".join-now",
		},
		Sections: Sections{
			Start: []string{
				"About the job",
				"Role and Responsibilities",
				"What You'll Do",
				"The Role",
				"Position Summary",
				"Job Description",
				"Overview",
				"About This Role",
				"About this role",
				"The Opportunity",
				"Description",
			},
			End: []string{
				"Qualifications",
				"Requirements",
				"Required Skills",
				"Required Experience",
				"What You'll Need",
				"What You Need",
				"Basic Qualifications",
				"Minimum Qualifications",
				"Skills and Experience",
				"About Us",
				"About the Company",
				"Benefits",
				"What We Offer",
				"Perks",
				"Why Join Us",
				"Equal Opportunity",
			},
		},
	}
}
